package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Sriram-PR/index-now/pkg/config"
	pkglog "github.com/Sriram-PR/index-now/pkg/log"
	"github.com/Sriram-PR/index-now/pkg/mcp"
)

// runMcpServer handles the mcp-server subcommand
func runMcpServer(args []string) {
	fs := flag.NewFlagSet("mcp-server", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	transport := fs.String("transport", "stdio", "Transport type (stdio, sse)")
	port := fs.Int("port", 8080, "HTTP port (for sse transport)")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: index-now mcp-server [options]

Start an MCP (Model Context Protocol) server for AI tool integration.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Start with stdio transport
  index-now mcp-server -config config.yaml

  # Start with SSE transport on port 8080
  index-now mcp-server -config config.yaml -transport sse -port 8080

Available MCP Tools:
  list_sites        List all configured sites
  get_sitemap_urls  Fetch and filter sitemap URLs without submitting
  submit_urls       Submit URLs with a configured site's credentials
  submit_site       Submit the sitemap URLs of a configured site
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doMcpServer(*configFile, *transport, *port, *logLevel, os.Stderr)
	os.Exit(exitCode)
}

// doMcpServer loads the config and serves MCP until the transport closes.
// Logs go to stderr since stdio transport owns stdout.
func doMcpServer(configPath, transport string, port int, logLevel string, stderr io.Writer) int {
	log := pkglog.NewLogger(logLevel, stderr)

	appCfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
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

	server, err := mcp.NewServer(&mcp.ServerConfig{
		AppConfig:  appCfg,
		ConfigPath: configPath,
		Transport:  transport,
		Port:       port,
		Version:    version,
		Logger:     log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error creating MCP server: %v\n", err)
		return 1
	}

	log.Infof("Starting MCP server (transport: %s)", transport)
	if err := server.Run(); err != nil {
		fmt.Fprintf(stderr, "MCP server error: %v\n", err)
		return 1
	}
	return 0
}
