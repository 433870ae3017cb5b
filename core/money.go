package core

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseAmount parses scraped monetary text such as "$5,000" or "25000.50".
// Returns the amount and true on success. Empty or malformed text returns
// false; callers treat that as "unconstrained", never as an error.
func ParseAmount(text string) (float64, bool) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return 0, false
	}
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// FormatAmount renders an amount with a currency sign and thousands
// separators, e.g. 5000 -> "$5,000".
func FormatAmount(amount float64) string {
	return "$" + humanize.Commaf(amount)
}
