package match

import (
	"strings"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/vector"
)

const (
	// tagBoost is added once per eligibility tag found in the grant text.
	tagBoost float32 = 0.05

	// softFloor drops low-relevance grants even when funding-eligible.
	softFloor float32 = 0.3
)

// boostRule is one demographic scoring rule. When the profile predicate
// holds and any keyword appears in the grant text, the boost applies,
// at most once per grant.
type boostRule struct {
	name     string
	applies  func(user *core.UserProfile) bool
	keywords []string
	boost    float32
}

func affirmative(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "yes")
}

var boostRules = []boostRule{
	{
		name:     "student",
		applies:  func(u *core.UserProfile) bool { return strings.TrimSpace(u.StudentStatus) != "" },
		keywords: []string{"student"},
		boost:    0.08,
	},
	{
		name:     "immigrant",
		applies:  func(u *core.UserProfile) bool { return affirmative(u.ImmigrantStatus) },
		keywords: []string{"immigrant", "newcomer"},
		boost:    0.08,
	},
	{
		name:     "indigenous",
		applies:  func(u *core.UserProfile) bool { return affirmative(u.IndigenousStatus) },
		keywords: []string{"indigenous", "first nation", "aboriginal"},
		boost:    0.10,
	},
	{
		name:     "veteran",
		applies:  func(u *core.UserProfile) bool { return affirmative(u.VeteranStatus) },
		keywords: []string{"veteran", "military"},
		boost:    0.08,
	},
	{
		name:     "youth",
		applies:  func(u *core.UserProfile) bool { return u.Age > 0 && u.Age < 30 },
		keywords: []string{"youth"},
		boost:    0.06,
	},
	{
		name:     "senior",
		applies:  func(u *core.UserProfile) bool { return u.Age >= 65 },
		keywords: []string{"senior", "elder"},
		boost:    0.06,
	},
	{
		name:     "women",
		applies:  func(u *core.UserProfile) bool { return strings.EqualFold(strings.TrimSpace(u.Gender), "female") },
		keywords: []string{"women"},
		boost:    0.06,
	},
	{
		name:     "men",
		applies:  func(u *core.UserProfile) bool { return strings.EqualFold(strings.TrimSpace(u.Gender), "male") },
		keywords: []string{"men"},
		boost:    0.06,
	},
}

// Engine computes composite relevance scores.
type Engine struct {
	rules []boostRule
}

// NewEngine creates a scoring engine with the standard rule set.
func NewEngine() *Engine {
	return &Engine{rules: boostRules}
}

// Score computes the composite relevance of one grant for one user.
// Returns (score, excluded). Excluded grants fail either the hard funding
// filter or the soft relevance floor and must not appear in results.
func (e *Engine) Score(user *core.UserProfile, grant *core.GrantRecord, grantVec, userVec []float32) (float32, bool) {
	if fundingExcluded(user, grant) {
		return 0, true
	}

	base := (vector.Cosine(userVec, grantVec) + 1) / 2

	text := strings.ToLower(grant.MatchText())

	var boosts float32
	for _, tag := range user.EligibilityTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" && strings.Contains(text, tag) {
			boosts += tagBoost
		}
	}

	for _, rule := range e.rules {
		if !rule.applies(user) {
			continue
		}
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				boosts += rule.boost
				break
			}
		}
	}

	total := base + boosts
	if total > 1.0 {
		total = 1.0
	}
	if total < softFloor {
		return total, true
	}
	return total, false
}

// fundingExcluded applies the hard funding-overlap filter. The filter only
// engages when the user supplies both goal bounds and the grant's bounds
// both parse as amounts; anything missing or malformed is unconstrained.
func fundingExcluded(user *core.UserProfile, grant *core.GrantRecord) bool {
	if user.FundingGoalLow <= 0 || user.FundingGoalHigh <= 0 {
		return false
	}
	grantLow, lowOK := core.ParseAmount(grant.FundingLow)
	if !lowOK {
		return false
	}
	grantHigh, highOK := core.ParseAmount(grant.FundingHigh)
	if !highOK {
		return false
	}
	return !(grantLow <= float64(user.FundingGoalHigh) && grantHigh >= float64(user.FundingGoalLow))
}
