package config

import (
	"fmt"

	"github.com/Sriram-PR/index-now/pkg/filter"
	"github.com/Sriram-PR/index-now/pkg/models"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// SitemapFilter converts the YAML filter settings and validates them
func (f FilterConfig) SitemapFilter() (filter.SitemapFilter, error) {
	result := filter.SitemapFilter{
		Contains: f.Contains,
		Excludes: f.Excludes,
		Skip:     f.Skip,
		Take:     f.Take,
	}

	if f.ChangeFrequency != nil {
		freq, ok := models.ParseChangeFrequency(*f.ChangeFrequency)
		if !ok {
			return filter.SitemapFilter{}, fmt.Errorf("%w: unknown change_frequency '%s'", utils.ErrConfigValidation, *f.ChangeFrequency)
		}
		result.ChangeFrequency = &freq
	}

	if f.DateRange != nil {
		dateRange, err := filter.ParseDateRange(*f.DateRange)
		if err != nil {
			return filter.SitemapFilter{}, fmt.Errorf("%w: date_range: %v", utils.ErrConfigValidation, err)
		}
		result.DateRange = &dateRange
	}

	if err := result.Validate(); err != nil {
		return filter.SitemapFilter{}, err
	}
	return result, nil
}
