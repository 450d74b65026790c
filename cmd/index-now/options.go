package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/config"
	"github.com/Sriram-PR/index-now/pkg/orchestrate"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// apiKeyEnv supplies the API key when neither -key nor -site is given
const apiKeyEnv = "INDEXNOW_API_KEY"

// commonOptions are the flags shared by the submission commands.
// With -site the credentials, endpoint and filter come from the config file and flags override them.
type commonOptions struct {
	configPath  string
	siteKey     string
	host        string
	apiKey      string
	keyLocation string
	endpoint    string
	logLevel    string
	noNested    bool
	filter      *config.FilterConfig // From filter flags; nil keeps the site filter
}

func (o *commonOptions) register(fs *flag.FlagSet, withCredentials bool) {
	fs.StringVar(&o.configPath, "config", "config.yaml", "Path to config file (used with -site)")
	fs.StringVar(&o.siteKey, "site", "", "Site key from config")
	fs.StringVar(&o.endpoint, "endpoint", "", "Search engine (indexnow, bing, naver, seznam, yandex, yep) or endpoint URL")
	fs.StringVar(&o.logLevel, "loglevel", "info", "Log level (debug, info, warn, error)")
	if withCredentials {
		fs.StringVar(&o.host, "host", "", "Site host, e.g. example.com")
		fs.StringVar(&o.apiKey, "key", "", "IndexNow API key (default $"+apiKeyEnv+")")
		fs.StringVar(&o.keyLocation, "key-location", "", "URL of the key file")
	}
}

// filterFlags are the command-line sitemap filter settings
type filterFlags struct {
	contains   string
	excludes   string
	skip       int
	take       int
	changeFreq string
	dateRange  string
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.contains, "contains", "", "Keep URLs matching this regular expression")
	fs.StringVar(&f.excludes, "excludes", "", "Drop URLs matching this regular expression")
	fs.IntVar(&f.skip, "skip", 0, "Drop this many URLs from the start")
	fs.IntVar(&f.take, "take", 0, "Keep at most this many URLs")
	fs.StringVar(&f.changeFreq, "changefreq", "", "Keep URLs with this change frequency")
	fs.StringVar(&f.dateRange, "date-range", "", "Keep URLs modified in this range, e.g. days-ago:7 or range:2025-01-01..2025-01-31")
}

// config returns the filter flags that were set on fs, or nil if none were
func (f *filterFlags) config(fs *flag.FlagSet) *config.FilterConfig {
	var fc config.FilterConfig
	given := false
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "contains":
			fc.Contains = utils.Ptr(f.contains)
		case "excludes":
			fc.Excludes = utils.Ptr(f.excludes)
		case "skip":
			fc.Skip = utils.Ptr(f.skip)
		case "take":
			fc.Take = utils.Ptr(f.take)
		case "changefreq":
			fc.ChangeFrequency = utils.Ptr(f.changeFreq)
		case "date-range":
			fc.DateRange = utils.Ptr(f.dateRange)
		default:
			return
		}
		given = true
	})
	if !given {
		return nil
	}
	return &fc
}

// resolve loads the target site, either from the config file (-site) or from the credential flags
func (o *commonOptions) resolve(log *logrus.Logger) (*config.AppConfig, config.SiteConfig, error) {
	var (
		appCfg *config.AppConfig
		site   config.SiteConfig
	)

	if o.siteKey != "" {
		log.Infof("Loading configuration from %s", o.configPath)
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return nil, site, err
		}
		warnings, err := cfg.Validate()
		for _, w := range warnings {
			log.Warn(w)
		}
		if err != nil {
			return nil, site, err
		}
		if err := orchestrate.ValidateSiteKeys(cfg, []string{o.siteKey}); err != nil {
			return nil, site, err
		}
		site = cfg.Sites[o.siteKey]
		siteWarnings, err := site.Validate()
		for _, w := range siteWarnings {
			log.Warnf("site '%s': %s", o.siteKey, w)
		}
		if err != nil {
			return nil, site, fmt.Errorf("site '%s': %w", o.siteKey, err)
		}
		cfg.Sites[o.siteKey] = site
		appCfg = cfg
	} else {
		if err := config.LoadEnv(); err != nil {
			return nil, site, err
		}
		appCfg = &config.AppConfig{}
		if _, err := appCfg.Validate(); err != nil {
			return nil, site, err
		}
		site = config.SiteConfig{Host: o.host, APIKey: o.apiKey, APIKeyLocation: o.keyLocation}
		if site.APIKey == "" {
			site.APIKey = os.Getenv(apiKeyEnv)
		}
	}

	if o.endpoint != "" {
		site.Endpoint = o.endpoint
	}
	if o.filter != nil {
		site.Filter = *o.filter
	}
	if o.noNested {
		site.FollowNestedSitemaps = utils.Ptr(false)
	}
	return appCfg, site, nil
}
