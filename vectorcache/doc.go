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


// Package vectorcache persists the grant embedding cache on disk.
//
// The cache is a pair of files in one directory: a binary artifact holding
// the embedding vectors, and a JSON sidecar holding the metadata operators
// read (count, dimension, grant names, generation time). Saves go through
// temp files and renames so readers never observe a half-written pair.
//
// The read path takes no lock. Cache generation is single-writer by
// convention, enforced with a file lock in the generate package.
package vectorcache
