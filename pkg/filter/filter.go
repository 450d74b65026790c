package filter

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/models"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// SitemapFilter selects sitemap URLs by pattern, position, change frequency and modification date
// A nil field disables that stage
type SitemapFilter struct {
	ChangeFrequency *models.ChangeFrequency `json:"change_frequency,omitempty"`
	DateRange       *DateRange              `json:"-"`
	Contains        *string                 `json:"contains,omitempty"`
	Excludes        *string                 `json:"excludes,omitempty"`
	Skip            *int                    `json:"skip,omitempty"`
	Take            *int                    `json:"take,omitempty"`
}

// IsEmpty returns true if no stage is enabled
func (f SitemapFilter) IsEmpty() bool {
	return f.ChangeFrequency == nil && f.DateRange == nil && f.Contains == nil &&
		f.Excludes == nil && f.Skip == nil && f.Take == nil
}

// Validate checks the filter up front so configuration mistakes surface as errors
// instead of an empty result from FilterURLs
func (f SitemapFilter) Validate() error {
	var problems []string

	if _, err := utils.CompilePattern(f.Contains); err != nil {
		problems = append(problems, fmt.Sprintf("contains: %v", err))
	}
	if _, err := utils.CompilePattern(f.Excludes); err != nil {
		problems = append(problems, fmt.Sprintf("excludes: %v", err))
	}
	if f.Skip != nil && *f.Skip < 0 {
		problems = append(problems, fmt.Sprintf("skip must be >= 0, got %d", *f.Skip))
	}
	if f.Take != nil && *f.Take < 0 {
		problems = append(problems, fmt.Sprintf("take must be >= 0, got %d", *f.Take))
	}
	if f.ChangeFrequency != nil {
		if _, ok := models.ParseChangeFrequency(string(*f.ChangeFrequency)); !ok {
			problems = append(problems, fmt.Sprintf("unknown change frequency '%s'", *f.ChangeFrequency))
		}
	}
	if f.DateRange != nil && f.DateRange.IsZero() {
		problems = append(problems, "date range is set but empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: invalid sitemap filter: %s", utils.ErrConfigValidation, strings.Join(problems, "; "))
	}
	return nil
}

// String summarizes the enabled stages for logging
func (f SitemapFilter) String() string {
	if f.IsEmpty() {
		return "none"
	}
	var parts []string
	if f.Contains != nil {
		parts = append(parts, fmt.Sprintf("contains=%q", *f.Contains))
	}
	if f.Excludes != nil {
		parts = append(parts, fmt.Sprintf("excludes=%q", *f.Excludes))
	}
	if f.Skip != nil {
		parts = append(parts, fmt.Sprintf("skip=%d", *f.Skip))
	}
	if f.Take != nil {
		parts = append(parts, fmt.Sprintf("take=%d", *f.Take))
	}
	if f.ChangeFrequency != nil {
		parts = append(parts, "changefreq="+f.ChangeFrequency.String())
	}
	if f.DateRange != nil {
		parts = append(parts, "date_range="+f.DateRange.String())
	}
	return strings.Join(parts, " ")
}

// FilterURLs runs the filter pipeline and returns the surviving locations in their original order
func FilterURLs(records []models.SitemapURL, f SitemapFilter, log logrus.FieldLogger) []string {
	return models.Locations(FilterRecords(records, f, log))
}

// FilterLocations runs the pipeline over bare locations
// Records built this way carry no metadata, so the change frequency and date stages keep everything
func FilterLocations(urls []string, f SitemapFilter, log logrus.FieldLogger) []string {
	records := make([]models.SitemapURL, 0, len(urls))
	for _, u := range urls {
		records = append(records, models.SitemapURL{Loc: u})
	}
	return FilterURLs(records, f, log)
}

// FilterRecords applies the stages in order: contains, excludes, skip, take, change frequency, date range
// Any stage that empties the list stops the pipeline with an info message. Never returns nil
func FilterRecords(records []models.SitemapURL, f SitemapFilter, log logrus.FieldLogger) []models.SitemapURL {
	if len(records) == 0 {
		log.Info("No URLs given before filtering.")
		return []models.SitemapURL{}
	}
	result := records

	// --- Text Stages ---
	if f.Contains != nil {
		re, err := utils.CompilePattern(f.Contains)
		if err != nil {
			log.WithField("error", err).Error("Cannot apply contains filter")
			return []models.SitemapURL{}
		}
		result = keep(result, func(r models.SitemapURL) bool { return re.MatchString(r.Loc) })
		if len(result) == 0 {
			log.Infof("No URLs contained the pattern \"%s\".", *f.Contains)
			return result
		}
	}

	if f.Excludes != nil {
		re, err := utils.CompilePattern(f.Excludes)
		if err != nil {
			log.WithField("error", err).Error("Cannot apply excludes filter")
			return []models.SitemapURL{}
		}
		result = keep(result, func(r models.SitemapURL) bool { return !re.MatchString(r.Loc) })
		if len(result) == 0 {
			log.Infof("No URLs left after excluding the pattern \"%s\".", *f.Excludes)
			return result
		}
	}

	// --- Position Stages ---
	if f.Skip != nil && *f.Skip > 0 {
		if *f.Skip >= len(result) {
			log.Infof("No URLs left after skipping %d URL(s) from sitemap.", *f.Skip)
			return []models.SitemapURL{}
		}
		result = result[*f.Skip:]
	}

	if f.Take != nil {
		if *f.Take <= 0 {
			log.Info("No URLs left. The value for take should be greater than 0.")
			return []models.SitemapURL{}
		}
		if *f.Take < len(result) {
			result = result[:*f.Take]
		}
	}

	// --- Metadata Stages ---
	// Records without the metadata pass through: an undeclared value is not a mismatch
	if f.ChangeFrequency != nil {
		target := *f.ChangeFrequency
		result = keep(result, func(r models.SitemapURL) bool {
			return r.ChangeFreq == nil || r.ChangeFreq.Matches(target)
		})
		if len(result) == 0 {
			log.Infof("No URLs matched the change frequency \"%s\".", target)
			return result
		}
	}

	if f.DateRange != nil {
		dateRange := *f.DateRange
		result = keep(result, func(r models.SitemapURL) bool {
			return r.LastMod == nil || dateRange.IsWithinRange(*r.LastMod)
		})
		if len(result) == 0 {
			log.Infof("No URLs matched the date range %s.", dateRange)
			return result
		}
	}

	return append([]models.SitemapURL{}, result...)
}

// keep returns a new slice holding the records accepted by pred
func keep(records []models.SitemapURL, pred func(models.SitemapURL) bool) []models.SitemapURL {
	kept := make([]models.SitemapURL, 0, len(records))
	for _, r := range records {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	return kept
}
