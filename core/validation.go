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

import (
	"fmt"
)

// ValidateGrantRecord validates a GrantRecord according to domain rules.
//
// Validation rules:
//   - ProgramName must not be empty
//
// NOT validated:
//   - Description (grants without a description are stored but excluded
//     from the canonical matching query)
//   - FundingLow/FundingHigh (free scraped text; malformed values degrade
//     to "unconstrained" in the scoring engine, never to an error)
//   - ID (0 is valid before the store assigns one)
func ValidateGrantRecord(grant *GrantRecord) error {
	if grant == nil {
		return fmt.Errorf("%w: grant is nil", ErrInvalidGrantRecord)
	}

	if grant.ProgramName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGrantRecord, ErrEmptyProgramName)
	}

	return nil
}

// ValidateUserProfile validates a UserProfile according to domain rules.
//
// Validation rules:
//   - UserID must not be empty
//   - Age must not be negative
//   - FundingGoalLow must not exceed FundingGoalHigh when both are set
func ValidateUserProfile(user *UserProfile) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", ErrInvalidUserProfile)
	}

	if user.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUserProfile, ErrEmptyUserID)
	}

	if user.Age < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidUserProfile, ErrNegativeAge)
	}

	if user.FundingGoalLow > 0 && user.FundingGoalHigh > 0 &&
		user.FundingGoalLow > user.FundingGoalHigh {
		return fmt.Errorf("%w: %w", ErrInvalidUserProfile, ErrInvertedFundingGoal)
	}

	return nil
}
