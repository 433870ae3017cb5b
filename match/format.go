package match

import (
	"fmt"

	"github.com/poiesic/grantmatch/core"
)

const (
	descriptionLimit = 200

	// notSpecified stands in for absent display values; callers never see
	// an empty funding range or deadline.
	notSpecified = "not specified"
)

func formatResult(grant *core.GrantRecord, score float32) core.MatchResult {
	return core.MatchResult{
		ProgramName:    grant.ProgramName,
		URL:            grant.URL,
		Description:    truncateDescription(grant.Description),
		FundingDisplay: formatFundingRange(grant.FundingLow, grant.FundingHigh),
		Deadline:       orPlaceholder(grant.Deadline),
		Source:         grant.Source,
		Score:          score,
	}
}

func truncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= descriptionLimit {
		return description
	}
	return string(runes[:descriptionLimit]) + "..."
}

// formatFundingRange renders the grant's funding bounds with thousands
// separators. Bounds that fail to parse fall back on the scraped text.
func formatFundingRange(low, high string) string {
	lowAmount, lowOK := core.ParseAmount(low)
	highAmount, highOK := core.ParseAmount(high)

	lowDisplay := low
	if lowOK {
		lowDisplay = core.FormatAmount(lowAmount)
	}
	highDisplay := high
	if highOK {
		highDisplay = core.FormatAmount(highAmount)
	}

	switch {
	case lowDisplay != "" && highDisplay != "":
		return fmt.Sprintf("%s - %s", lowDisplay, highDisplay)
	case lowDisplay != "":
		return fmt.Sprintf("from %s", lowDisplay)
	case highDisplay != "":
		return fmt.Sprintf("up to %s", highDisplay)
	}
	return notSpecified
}

func orPlaceholder(value string) string {
	if value == "" {
		return notSpecified
	}
	return value
}
