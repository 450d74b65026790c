package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/index-now/pkg/utils"
)

func TestDateRange_IsWithinRangeOn(t *testing.T) {
	today := date(2025, 3, 15)

	tests := []struct {
		name    string
		r       DateRange
		inside  []time.Time
		outside []time.Time
	}{
		{
			name:    "Range",
			r:       Range(date(2025, 1, 1), date(2025, 1, 31)),
			inside:  []time.Time{date(2025, 1, 1), date(2025, 1, 15), date(2025, 1, 31)},
			outside: []time.Time{date(2024, 12, 31), date(2025, 2, 1)},
		},
		{
			name:    "Between",
			r:       Between(date(2025, 1, 1), date(2025, 1, 31)),
			inside:  []time.Time{date(2025, 1, 2), date(2025, 1, 30)},
			outside: []time.Time{date(2025, 1, 1), date(2025, 1, 31), date(2025, 2, 5)},
		},
		{
			name:    "Today",
			r:       Today(),
			inside:  []time.Time{today, today.Add(23 * time.Hour)},
			outside: []time.Time{date(2025, 3, 14), date(2025, 3, 16)},
		},
		{
			name:    "Yesterday",
			r:       Yesterday(),
			inside:  []time.Time{date(2025, 3, 14)},
			outside: []time.Time{today, date(2025, 3, 13)},
		},
		{
			name:    "Day",
			r:       Day(date(2025, 1, 1)),
			inside:  []time.Time{date(2025, 1, 1), time.Date(2025, 1, 1, 18, 45, 0, 0, time.UTC)},
			outside: []time.Time{date(2024, 12, 31), date(2025, 1, 2)},
		},
		{
			name:    "DaysAgo",
			r:       DaysAgo(2),
			inside:  []time.Time{date(2025, 3, 13), date(2025, 3, 14), today},
			outside: []time.Time{date(2025, 3, 12), date(2025, 3, 16)},
		},
		{
			name:    "DaysAgoZero",
			r:       DaysAgo(0),
			inside:  []time.Time{today},
			outside: []time.Time{date(2025, 3, 14)},
		},
		{
			name:    "LaterThan",
			r:       LaterThan(date(2025, 1, 1)),
			inside:  []time.Time{date(2025, 1, 2), date(2030, 1, 1)},
			outside: []time.Time{date(2025, 1, 1), time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC), date(2024, 6, 1)},
		},
		{
			name:    "LaterThanOrEqual",
			r:       LaterThanOrEqual(date(2025, 1, 1)),
			inside:  []time.Time{date(2025, 1, 1), date(2025, 1, 2)},
			outside: []time.Time{date(2024, 12, 31)},
		},
		{
			name:    "EarlierThan",
			r:       EarlierThan(date(2025, 1, 1)),
			inside:  []time.Time{date(2024, 12, 31), date(2000, 1, 1)},
			outside: []time.Time{date(2025, 1, 1), date(2025, 1, 2)},
		},
		{
			name:    "EarlierThanOrEqual",
			r:       EarlierThanOrEqual(date(2025, 1, 1)),
			inside:  []time.Time{date(2025, 1, 1), date(2024, 12, 31)},
			outside: []time.Time{date(2025, 1, 2)},
		},
		{
			name:   "ZeroValue",
			r:      DateRange{},
			inside: []time.Time{date(1970, 1, 1), today},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, d := range tt.inside {
				assert.True(t, tt.r.IsWithinRangeOn(d, today), "%s should include %s", tt.r, d)
			}
			for _, d := range tt.outside {
				assert.False(t, tt.r.IsWithinRangeOn(d, today), "%s should exclude %s", tt.r, d)
			}
		})
	}
}

func TestDateRange_IgnoresTimeOfDay(t *testing.T) {
	r := Range(time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 6, 0, 0, 0, time.UTC))
	assert.True(t, r.IsWithinRange(time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)))
	assert.True(t, r.IsWithinRange(time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)))
}

func TestDateRange_UsesDeclaredOffset(t *testing.T) {
	// 23:30 on the 15th at +02:00 is still the 15th for the site that declared it
	lastmod := time.Date(2025, 3, 15, 23, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	assert.True(t, Day(date(2025, 3, 15)).IsWithinRange(lastmod))
}

func TestDateRange_TodayUsesCurrentDay(t *testing.T) {
	now := time.Now()
	assert.True(t, Today().IsWithinRange(now))
	assert.True(t, Yesterday().IsWithinRange(now.AddDate(0, 0, -1)))
	assert.True(t, DaysAgo(7).IsWithinRange(now.AddDate(0, 0, -7)))
	assert.False(t, DaysAgo(7).IsWithinRange(now.AddDate(0, 0, -8)))
}

func TestDateRange_Equal(t *testing.T) {
	jan1 := date(2025, 1, 1)
	jan30 := date(2025, 1, 30)
	jan31 := date(2025, 1, 31)
	feb3 := date(2024, 2, 3)

	tests := []struct {
		name     string
		a, b     DateRange
		expected bool
	}{
		{"RangeSame", Range(jan1, jan31), Range(jan1, jan31), true},
		{"RangeDifferentEnd", Range(jan1, jan31), Range(jan1, jan30), false},
		{"RangeVsToday", Range(jan1, jan31), Today(), false},
		{"RangeSameDayDifferentTime", Range(jan1, jan31), Range(jan1.Add(5*time.Hour), jan31), true},
		{"TodayToday", Today(), Today(), true},
		{"YesterdayYesterday", Yesterday(), Yesterday(), true},
		{"TodayVsYesterday", Today(), Yesterday(), false},
		{"DaySame", Day(jan1), Day(jan1), true},
		{"DayDifferent", Day(jan1), Day(feb3), false},
		{"DayVsDaysAgo", Day(jan1), DaysAgo(0), false},
		{"DaysAgoSame", DaysAgo(2), DaysAgo(2), true},
		{"DaysAgoDifferent", DaysAgo(1), DaysAgo(2), false},
		{"BetweenSame", Between(jan1, jan31), Between(jan1, jan31), true},
		{"BetweenDifferentEnd", Between(jan1, jan31), Between(jan1, jan30), false},
		{"BetweenVsRange", Between(jan1, jan31), Range(jan1, jan31), false},
		{"TodayVsRange", Today(), Range(jan1, jan31), false},
		{"YesterdayVsRange", Yesterday(), Range(jan1, jan31), false},
		{"DaysAgoVsRange", DaysAgo(2), Range(jan1, jan31), false},
		{"LaterThanSame", LaterThan(jan1), LaterThan(jan1), true},
		{"LaterThanDifferent", LaterThan(jan1), LaterThan(feb3), false},
		{"LaterThanVsRange", LaterThan(jan1), Range(jan1, jan31), false},
		{"LaterThanOrEqualSame", LaterThanOrEqual(jan1), LaterThanOrEqual(jan1), true},
		{"LaterThanOrEqualDifferent", LaterThanOrEqual(jan1), LaterThanOrEqual(feb3), false},
		{"LaterThanVsOrEqual", LaterThan(jan1), LaterThanOrEqual(jan1), false},
		{"EarlierThanSame", EarlierThan(jan1), EarlierThan(jan1), true},
		{"EarlierThanDifferent", EarlierThan(jan1), EarlierThan(feb3), false},
		{"EarlierThanVsRange", EarlierThan(jan1), Range(jan1, jan31), false},
		{"EarlierThanOrEqualSame", EarlierThanOrEqual(jan1), EarlierThanOrEqual(jan1), true},
		{"EarlierThanOrEqualDifferent", EarlierThanOrEqual(jan1), EarlierThanOrEqual(feb3), false},
		{"EarlierThanVsOrEqual", EarlierThan(jan1), EarlierThanOrEqual(jan1), false},
		{"ZeroValues", DateRange{}, DateRange{}, true},
		{"ZeroVsToday", DateRange{}, Today(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
			assert.Equal(t, tt.expected, tt.b.Equal(tt.a), "equality must be symmetric")
		})
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		input    string
		expected DateRange
	}{
		{"today", Today()},
		{" Today ", Today()},
		{"yesterday", Yesterday()},
		{"days-ago:7", DaysAgo(7)},
		{"days-ago: 0", DaysAgo(0)},
		{"day:2025-01-01", Day(date(2025, 1, 1))},
		{"range:2025-01-01..2025-01-31", Range(date(2025, 1, 1), date(2025, 1, 31))},
		{"between:2025-01-01..2025-01-31", Between(date(2025, 1, 1), date(2025, 1, 31))},
		{"after:2025-03-10", LaterThan(date(2025, 3, 10))},
		{"after-or-on:2025-03-10", LaterThanOrEqual(date(2025, 3, 10))},
		{"before:2025-01-20", EarlierThan(date(2025, 1, 20))},
		{"before-or-on:2025-01-20", EarlierThanOrEqual(date(2025, 1, 20))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateRange(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestParseDateRange_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"tomorrow",
		"today:2025-01-01",
		"days-ago:-1",
		"days-ago:many",
		"day:01/02/2025",
		"after:",
		"range:2025-01-01",
		"range:2025-01-01..soon",
		"between:..2025-01-31",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDateRange(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, utils.ErrConfigValidation) || errors.Is(err, utils.ErrParsing), "unexpected error: %v", err)
		})
	}
}

func TestDateRange_StringRoundTrip(t *testing.T) {
	ranges := []DateRange{
		Range(date(2025, 1, 1), date(2025, 1, 31)),
		Between(date(2025, 1, 1), date(2025, 1, 31)),
		Today(),
		Yesterday(),
		Day(date(2025, 1, 1)),
		DaysAgo(14),
		LaterThan(date(2025, 1, 1)),
		LaterThanOrEqual(date(2025, 1, 1)),
		EarlierThan(date(2025, 1, 1)),
		EarlierThanOrEqual(date(2025, 1, 1)),
	}

	for _, r := range ranges {
		t.Run(r.String(), func(t *testing.T) {
			parsed, err := ParseDateRange(r.String())
			require.NoError(t, err)
			assert.True(t, r.Equal(parsed))
		})
	}

	assert.Equal(t, "unset", DateRange{}.String())
}
