package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Sriram-PR/index-now/pkg/config"
	"github.com/Sriram-PR/index-now/pkg/indexnow"
)

// runValidate handles the validate subcommand
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	siteKey := fs.String("site", "", "Site key to validate (optional, validates all if empty)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: index-now validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doValidate(*configFile, *siteKey, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doValidate performs validation and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath, siteKey string, stdout, stderr io.Writer) int {
	appCfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := appCfg.Validate()
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	if siteKey != "" {
		siteCfg, ok := appCfg.Sites[siteKey]
		if !ok {
			fmt.Fprintf(stderr, "Error: site '%s' not found in config\n", siteKey)
			return 1
		}
		if !validateSite(siteKey, &siteCfg, stdout, stderr) {
			return 1
		}
		fmt.Fprintf(stdout, "OK: Site '%s' configuration is valid\n", siteKey)
	} else {
		keys := appCfg.SiteKeys()
		if len(keys) == 0 {
			fmt.Fprintln(stderr, "ERROR: no sites configured")
			return 1
		}
		hasError := false
		for _, key := range keys {
			siteCfg := appCfg.Sites[key]
			if !validateSite(key, &siteCfg, stdout, stderr) {
				hasError = true
				continue
			}
			fmt.Fprintf(stdout, "OK: [%s]\n", key)
		}
		if hasError {
			return 1
		}
	}

	fmt.Fprintln(stdout, "\nConfiguration valid.")
	return 0
}

func validateSite(key string, siteCfg *config.SiteConfig, stdout, stderr io.Writer) bool {
	siteWarnings, err := siteCfg.Validate()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: [%s] %v\n", key, err)
		return false
	}
	for _, w := range siteWarnings {
		fmt.Fprintf(stdout, "WARN: [%s] %s\n", key, w)
	}
	return true
}

// runListSites handles the list-sites subcommand
func runListSites(args []string) {
	fs := flag.NewFlagSet("list-sites", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: index-now list-sites [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doListSites(*configFile, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doListSites lists sites and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doListSites(configPath string, stdout, stderr io.Writer) int {
	appCfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Sites in %s:\n\n", configPath)
	for _, key := range appCfg.SiteKeys() {
		site := appCfg.Sites[key]
		fmt.Fprintf(stdout, "  %s\n", key)
		fmt.Fprintf(stdout, "    Host: %s\n", site.Host)
		if len(site.SitemapLocations) > 0 {
			fmt.Fprintf(stdout, "    Sitemaps: %s\n", strings.Join(site.SitemapLocations, ", "))
		}
		if site.DiscoverSitemaps {
			fmt.Fprintln(stdout, "    Discover sitemaps: robots.txt")
		}
		if endpoint := config.GetEffectiveEndpoint(site, *appCfg); endpoint != "" {
			fmt.Fprintf(stdout, "    Endpoint: %s\n", endpoint)
		}
		if f, err := site.Filter.SitemapFilter(); err == nil && !f.IsEmpty() {
			fmt.Fprintf(stdout, "    Filter: %s\n", f)
		}
		fmt.Fprintln(stdout)
	}
	return 0
}

// runGenerateKey handles the generate-key subcommand
func runGenerateKey(args []string) {
	fs := flag.NewFlagSet("generate-key", flag.ExitOnError)
	length := fs.Int("length", indexnow.DefaultAPIKeyLength, fmt.Sprintf("Key length (%d-%d)", indexnow.MinAPIKeyLength, indexnow.MaxAPIKeyLength))
	host := fs.String("host", "", "Site host; prints where to publish the key file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: index-now generate-key [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	os.Exit(doGenerateKey(*length, *host, os.Stdout, os.Stderr))
}

// doGenerateKey prints a new API key and, with a host, the key file location
func doGenerateKey(length int, host string, stdout, stderr io.Writer) int {
	key, err := indexnow.GenerateAPIKey(length)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, key)
	if host != "" {
		fmt.Fprintf(stdout, "\nPublish a text file containing only the key at:\n  %s\n", indexnow.KeyFileURL(host, key))
	}
	return 0
}
