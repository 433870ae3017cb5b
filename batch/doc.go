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


// Package batch drives asynchronous bulk embedding of the grant catalog.
//
// A run spans three separate process invocations: submit, which snapshots
// the catalog and hands it to the provider; poll, which checks the job
// state; and download, which turns completed results into a vector cache.
// The job descriptor is a small JSON file persisted at submit time so the
// later invocations can find the job again.
//
// Providers return results keyed by request ID in no particular order.
// Download re-orders them by the catalog index encoded in the key, so the
// resulting cache lines up with the catalog snapshot taken at submission.
package batch
