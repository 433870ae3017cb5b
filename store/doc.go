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


// Package store provides the storage abstraction layer for grantmatch.
//
// The matching core consumes the grant catalog and the user profile store
// only through the interfaces defined here; the badger subpackage supplies
// the concrete implementation. This keeps the core decoupled from where the
// ingestion pipeline actually lands its data.
//
// # The canonical catalog query
//
// GrantRepository.ListDescribedGrants returns grants with a non-empty
// description, most recently scraped first. The same query is used when the
// embedding cache is generated and when a match is served; this shared
// ordering is what makes index alignment between catalog and cache
// meaningful. The catalog is assumed to be de-duplicated by the ingestion
// side before it reaches this layer.
//
// # Thread safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package store
