// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the embedding services used by
// grantmatch.
//
// The package defines interfaces for the two embedding modes the system
// relies on, so the matching core and the generation pipelines depend on
// abstractions rather than a concrete provider:
//
//   - Embedder: synchronous single/multi text embedding with a unit-norm
//     contract (empty text yields the zero vector, never an error)
//   - BatchEmbedder: asynchronous provider-side bulk jobs with a polled
//     lifecycle; result delivery order is unspecified and callers must
//     re-order by key
//   - Provider: aggregates both for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and assert on call counts.
//
// Configuration is an explicit Config struct created once per process and
// injected into each component; there is no ambient package-level client.
package ai
