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


package core

import "errors"

// Matching and cache lifecycle errors. All of these are recoverable
// conditions the caller can test with errors.Is.
var (
	// ErrCacheMissing indicates no embedding cache artifact exists yet.
	// Run a generation pipeline (batch submit/download or generate).
	ErrCacheMissing = errors.New("embedding cache not found")

	// ErrCacheStale indicates the grant catalog and the embedding cache
	// disagree in size. Matching aborts rather than producing misaligned
	// scores; regenerate the cache.
	ErrCacheStale = errors.New("embedding cache out of sync with grant catalog")

	// ErrUserNotFound indicates the requested user profile does not exist.
	// Yields an empty match list, not a crash.
	ErrUserNotFound = errors.New("user profile not found")

	// ErrJobNotReady indicates a download was attempted before the batch
	// job reached SUCCEEDED. Poll again later.
	ErrJobNotReady = errors.New("batch job not ready for download")

	// ErrBatchJobFailed indicates the provider reported a terminal
	// failure (failed, cancelled or expired) for the whole batch job.
	// The existing cache is left untouched.
	ErrBatchJobFailed = errors.New("batch job failed")
)

// Domain validation errors.
var (
	// ErrInvalidGrantRecord indicates a GrantRecord failed validation.
	ErrInvalidGrantRecord = errors.New("invalid grant record")

	// ErrInvalidUserProfile indicates a UserProfile failed validation.
	ErrInvalidUserProfile = errors.New("invalid user profile")

	// ErrEmptyProgramName indicates the ProgramName field is empty.
	ErrEmptyProgramName = errors.New("program name cannot be empty")

	// ErrEmptyUserID indicates the UserID field is empty.
	ErrEmptyUserID = errors.New("user id cannot be empty")

	// ErrNegativeAge indicates a negative Age value.
	ErrNegativeAge = errors.New("age cannot be negative")

	// ErrInvertedFundingGoal indicates FundingGoalLow exceeds FundingGoalHigh.
	ErrInvertedFundingGoal = errors.New("funding goal low exceeds funding goal high")
)
