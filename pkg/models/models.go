package models

import (
	"fmt"
	"time"

	"github.com/Sriram-PR/index-now/pkg/utils"
)

// SitemapURL represents one <url> entry of a sitemap
// Optional fields are nil when the sitemap omits the element
type SitemapURL struct {
	Loc        string           `json:"loc" yaml:"loc"`
	LastMod    *time.Time       `json:"lastmod,omitempty" yaml:"lastmod,omitempty"`
	ChangeFreq *ChangeFrequency `json:"changefreq,omitempty" yaml:"changefreq,omitempty"`
	Priority   *float64         `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Locations returns the Loc values of records, preserving order
func Locations(records []SitemapURL) []string {
	locs := make([]string, 0, len(records))
	for _, r := range records {
		locs = append(locs, r.Loc)
	}
	return locs
}

// Authentication holds the credentials sent with every IndexNow submission
type Authentication struct {
	Host           string `json:"host" yaml:"host" validate:"required,hostname_rfc1123"`
	APIKey         string `json:"key" yaml:"api_key" validate:"required,min=8,max=128"`
	APIKeyLocation string `json:"keyLocation" yaml:"api_key_location" validate:"omitempty,url"`
}

// Validate checks the credentials before they are sent
func (a Authentication) Validate() error {
	if err := utils.ValidateStruct(a); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidAuthentication, err)
	}
	return nil
}
