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


// Package match ranks the grant catalog against a user profile.
//
// Scoring is a pure function over (profile, grant, grant vector, user
// vector): a hard funding-overlap filter, a cosine base score mapped to
// [0,1], then additive keyword boosts from the profile's tags and
// demographics. The matcher wires scoring to the stores, guards the
// catalog/cache alignment invariant, and formats results for display.
//
// A match request makes exactly one embedding call, for the user's
// project summary. Grant vectors come from the precomputed cache.
package match
