package models

import "strings"

// ChangeFrequency is the declared update cadence of a sitemap URL (<changefreq>)
type ChangeFrequency string

const (
	ChangeFrequencyAlways  ChangeFrequency = "always"
	ChangeFrequencyHourly  ChangeFrequency = "hourly"
	ChangeFrequencyDaily   ChangeFrequency = "daily"
	ChangeFrequencyWeekly  ChangeFrequency = "weekly"
	ChangeFrequencyMonthly ChangeFrequency = "monthly"
	ChangeFrequencyYearly  ChangeFrequency = "yearly"
	ChangeFrequencyNever   ChangeFrequency = "never"
)

// String implements fmt.Stringer for logging
func (c ChangeFrequency) String() string {
	if c == "" {
		return "unset"
	}
	return string(c)
}

// IsValid returns true if the frequency is one of the sitemaps.org values
func (c ChangeFrequency) IsValid() bool {
	switch c {
	case ChangeFrequencyAlways, ChangeFrequencyHourly, ChangeFrequencyDaily, ChangeFrequencyWeekly,
		ChangeFrequencyMonthly, ChangeFrequencyYearly, ChangeFrequencyNever:
		return true
	}
	return false
}

// Matches compares two frequencies case-insensitively
func (c ChangeFrequency) Matches(other ChangeFrequency) bool {
	return strings.EqualFold(string(c), string(other))
}

// ParseChangeFrequency canonicalizes s to lowercase and reports whether it is a known value
func ParseChangeFrequency(s string) (ChangeFrequency, bool) {
	c := ChangeFrequency(strings.ToLower(strings.TrimSpace(s)))
	return c, c.IsValid()
}
