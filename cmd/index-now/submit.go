package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Sriram-PR/index-now/pkg/config"
	"github.com/Sriram-PR/index-now/pkg/indexnow"
	pkglog "github.com/Sriram-PR/index-now/pkg/log"
	"github.com/Sriram-PR/index-now/pkg/orchestrate"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// parseCommand parses a submission command's flags and exits on error
func parseCommand(name, usage string, args []string, withCredentials, withFilter bool) (*commonOptions, []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	opts := &commonOptions{}
	opts.register(fs, withCredentials)
	var filters filterFlags
	if withFilter {
		filters.register(fs)
		fs.BoolVar(&opts.noNested, "no-nested", false, "Do not expand sitemap index files")
	}

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: index-now %s\n\nOptions:\n", usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if withFilter {
		opts.filter = filters.config(fs)
	}
	return opts, fs.Args()
}

// runSubmitURL handles the submit-url subcommand
func runSubmitURL(args []string) {
	opts, urls := parseCommand("submit-url", "submit-url [options] <url>...", args, true, false)
	ctx, cancel := signalContext()
	defer cancel()
	os.Exit(doSubmitURL(ctx, opts, urls, os.Stdout, os.Stderr))
}

// doSubmitURL submits urls and writes the status to stdout.
// Returns exit code (0 = success, 1 = error).
func doSubmitURL(ctx context.Context, opts *commonOptions, urls []string, stdout, stderr io.Writer) int {
	if len(urls) == 0 {
		fmt.Fprintln(stderr, "Error: no URLs given")
		return 1
	}
	log := pkglog.NewLogger(opts.logLevel, stderr)
	appCfg, site, err := opts.resolve(log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	svc := newServices(appCfg, log)
	status, err := svc.client.SubmitURLs(ctx, site.Authentication(), urls, config.GetEffectiveEndpoint(site, *appCfg))
	return reportStatus(stdout, stderr, status, err)
}

// runSubmitSitemap handles the submit-sitemap subcommand
func runSubmitSitemap(args []string) {
	opts, locations := parseCommand("submit-sitemap", "submit-sitemap [options] [sitemap-url]...", args, true, true)
	ctx, cancel := signalContext()
	defer cancel()
	os.Exit(doSubmitSitemap(ctx, opts, locations, os.Stdout, os.Stderr))
}

// doSubmitSitemap collects, filters and submits sitemap URLs.
// Without locations the sitemaps of the -site entry are used.
func doSubmitSitemap(ctx context.Context, opts *commonOptions, locations []string, stdout, stderr io.Writer) int {
	log := pkglog.NewLogger(opts.logLevel, stderr)
	appCfg, site, err := opts.resolve(log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	svc := newServices(appCfg, log)

	if len(locations) == 0 {
		locations, err = svc.runner.SiteLocations(ctx, site)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	f, err := site.Filter.SitemapFilter()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	outcome, err := svc.pipeline.SubmitSitemaps(ctx, orchestrate.SitemapRequest{
		Auth:         site.Authentication(),
		Locations:    locations,
		Filter:       f,
		Endpoint:     config.GetEffectiveEndpoint(site, *appCfg),
		FollowNested: config.GetEffectiveFollowNested(site),
	})
	fmt.Fprintf(stdout, "Found %d URL(s), submitted %d\n", outcome.Found, outcome.Submitted)
	for _, location := range outcome.Failed {
		fmt.Fprintf(stdout, "Failed sitemap: %s\n", location)
	}
	return reportStatus(stdout, stderr, outcome.Status, err)
}

// runURLs handles the urls subcommand
func runURLs(args []string) {
	opts, locations := parseCommand("urls", "urls [options] [sitemap-url]...", args, false, true)
	ctx, cancel := signalContext()
	defer cancel()
	os.Exit(doURLs(ctx, opts, locations, os.Stdout, os.Stderr))
}

// doURLs prints the filtered sitemap URLs, one per line, without submitting them
func doURLs(ctx context.Context, opts *commonOptions, locations []string, stdout, stderr io.Writer) int {
	log := pkglog.NewLogger(opts.logLevel, stderr)
	appCfg, site, err := opts.resolve(log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	svc := newServices(appCfg, log)

	if len(locations) == 0 {
		if opts.siteKey == "" {
			fmt.Fprintln(stderr, "Error: give sitemap URLs or -site")
			return 1
		}
		if locations, err = svc.runner.SiteLocations(ctx, site); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	f, err := site.Filter.SitemapFilter()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	urls, collection, err := svc.pipeline.CollectURLs(ctx, locations, f, config.GetEffectiveFollowNested(site))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, u := range urls {
		fmt.Fprintln(stdout, u)
	}
	if collection.AllFailed() {
		fmt.Fprintln(stderr, "Error: no sitemap could be fetched")
		return 1
	}
	return 0
}

// runDiscover handles the discover subcommand
func runDiscover(args []string) {
	opts, hosts := parseCommand("discover", "discover [options] [host-or-url]...", args, false, false)
	ctx, cancel := signalContext()
	defer cancel()
	os.Exit(doDiscover(ctx, opts, hosts, os.Stdout, os.Stderr))
}

// doDiscover prints the Sitemap: entries of each site's robots.txt
func doDiscover(ctx context.Context, opts *commonOptions, hosts []string, stdout, stderr io.Writer) int {
	log := pkglog.NewLogger(opts.logLevel, stderr)
	appCfg, site, err := opts.resolve(log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if len(hosts) == 0 && site.Host != "" {
		hosts = []string{site.Host}
	}
	if len(hosts) == 0 {
		fmt.Fprintln(stderr, "Error: give a host or -site")
		return 1
	}

	svc := newServices(appCfg, log)
	exitCode := 0
	for _, host := range hosts {
		sitemaps, err := svc.fetcher.SitemapDirectives(ctx, host)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", host, err)
			exitCode = 1
			continue
		}
		for _, s := range sitemaps {
			fmt.Fprintln(stdout, s)
		}
	}
	return exitCode
}

// runRun handles the run subcommand
func runRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	sites := fs.String("sites", "", "Comma-separated site keys (default: all sites)")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: index-now run [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	var siteKeys []string
	if *sites != "" {
		for _, key := range strings.Split(*sites, ",") {
			if key = strings.TrimSpace(key); key != "" {
				siteKeys = append(siteKeys, key)
			}
		}
	}

	ctx, cancel := signalContext()
	defer cancel()
	os.Exit(doRun(ctx, *configFile, siteKeys, *logLevel, os.Stdout, os.Stderr))
}

// doRun submits the configured sites, all of them if siteKeys is empty
func doRun(ctx context.Context, configPath string, siteKeys []string, logLevel string, stdout, stderr io.Writer) int {
	log := pkglog.NewLogger(logLevel, stderr)
	log.Infof("Loading configuration from %s", configPath)
	appCfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := appCfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	siteWarnings, err := appCfg.ValidateSites()
	for _, w := range siteWarnings {
		log.Warn(w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if len(siteKeys) == 0 {
		siteKeys = orchestrate.GetAllSiteKeys(appCfg)
	}
	if err := orchestrate.ValidateSiteKeys(appCfg, siteKeys); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	svc := newServices(appCfg, log)
	results := svc.runner.Run(ctx, siteKeys)

	exitCode := 0
	for _, r := range results {
		status := "OK"
		if !r.Success {
			status = "FAILED"
			exitCode = 1
		}
		fmt.Fprintf(stdout, "%s: [%s] %d URL(s) submitted, status %s\n",
			status, r.SiteKey, r.Outcome.Submitted, indexnow.DescribeStatus(r.Outcome.Status))
	}
	return exitCode
}

// reportStatus prints a submission status and maps it to an exit code
func reportStatus(stdout, stderr io.Writer, status int, err error) int {
	if status != 0 {
		fmt.Fprintf(stdout, "Status code: %s\n", indexnow.DescribeStatus(status))
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v (%s)\n", err, utils.CategorizeError(err))
		return 1
	}
	if !indexnow.IsSuccess(status) {
		return 1
	}
	return 0
}
