package parse

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sriram-PR/index-now/pkg/utils"
)

// lastModLayouts lists the W3C Datetime profiles allowed in <lastmod>, most specific first
var lastModLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
	"2006-01",
	"2006",
}

// ParseLastModified parses a <lastmod> value
func ParseLastModified(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range lastModLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid lastmod date '%s'", utils.ErrParsing, value)
}

// ParseDate parses a plain YYYY-MM-DD calendar date, as used in config and CLI flags
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date '%s' (want YYYY-MM-DD)", utils.ErrParsing, value)
	}
	return t, nil
}
