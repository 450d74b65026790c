package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/config"
	"github.com/Sriram-PR/index-now/pkg/fetch"
	"github.com/Sriram-PR/index-now/pkg/indexnow"
	"github.com/Sriram-PR/index-now/pkg/orchestrate"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "submit-url":
		runSubmitURL(os.Args[2:])
	case "submit-sitemap":
		runSubmitSitemap(os.Args[2:])
	case "urls":
		runURLs(os.Args[2:])
	case "discover":
		runDiscover(os.Args[2:])
	case "run":
		runRun(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "list-sites":
		runListSites(os.Args[2:])
	case "generate-key":
		runGenerateKey(os.Args[2:])
	case "mcp-server":
		runMcpServer(os.Args[2:])
	case "version":
		fmt.Printf("index-now %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `index-now - Submit sitemap URLs to search engines via IndexNow

Usage:
  index-now <command> [options]

Commands:
  submit-url      Submit one or more URLs
  submit-sitemap  Submit the URLs of one or more sitemaps
  urls            Print the filtered URLs of sitemaps without submitting
  discover        List the sitemaps announced in robots.txt
  run             Submit configured sites
  validate        Validate configuration file
  list-sites      List available site keys
  generate-key    Generate an IndexNow API key
  mcp-server      Start MCP server for AI tool integration
  version         Show version info

Run 'index-now <command> -h' for command-specific help.`)
}

// services bundles the collaborators shared by the submission commands
type services struct {
	fetcher  *fetch.Fetcher
	client   *indexnow.Client
	pipeline *orchestrate.Pipeline
	runner   *orchestrate.Runner
}

func newServices(appCfg *config.AppConfig, log *logrus.Logger) *services {
	httpClient := fetch.NewClient(appCfg.HTTPClientSettings, log)
	fetcher := fetch.NewFetcher(httpClient, appCfg, log)
	client := indexnow.NewClient(httpClient, appCfg.UserAgent, log)
	pipeline := orchestrate.NewPipeline(fetcher, client, appCfg.MaxSitemapDepth, log)
	return &services{
		fetcher:  fetcher,
		client:   client,
		pipeline: pipeline,
		runner:   orchestrate.NewRunner(appCfg, pipeline, fetcher, log),
	}
}
