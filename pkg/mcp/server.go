package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/config"
	"github.com/Sriram-PR/index-now/pkg/fetch"
	"github.com/Sriram-PR/index-now/pkg/indexnow"
	"github.com/Sriram-PR/index-now/pkg/orchestrate"
	"github.com/Sriram-PR/index-now/pkg/sitemap"
)

const serverName = "index-now"

// ServerConfig holds configuration for the MCP server
type ServerConfig struct {
	AppConfig  *config.AppConfig
	ConfigPath string
	Transport  string // "stdio" or "sse"
	Port       int
	Version    string
	Logger     *logrus.Logger

	// Optional collaborators; built from AppConfig when nil
	Fetcher    sitemap.ContentFetcher
	Discoverer orchestrate.Discoverer
	Submitter  orchestrate.Submitter
}

// Server exposes sitemap inspection and IndexNow submission as MCP tools
type Server struct {
	mcpServer *server.MCPServer
	cfg       *ServerConfig
	pipeline  *orchestrate.Pipeline
	runner    *orchestrate.Runner
	submitter orchestrate.Submitter
	log       *logrus.Entry
}

// NewServer creates a new MCP server instance
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg.AppConfig == nil {
		return nil, fmt.Errorf("AppConfig is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	log := cfg.Logger.WithField("component", "mcp")

	if cfg.Fetcher == nil || cfg.Discoverer == nil || cfg.Submitter == nil {
		httpClient := fetch.NewClient(cfg.AppConfig.HTTPClientSettings, log)
		fetcher := fetch.NewFetcher(httpClient, cfg.AppConfig, log)
		if cfg.Fetcher == nil {
			cfg.Fetcher = fetcher
		}
		if cfg.Discoverer == nil {
			cfg.Discoverer = fetcher
		}
		if cfg.Submitter == nil {
			cfg.Submitter = indexnow.NewClient(httpClient, cfg.AppConfig.UserAgent, log)
		}
	}

	pipeline := orchestrate.NewPipeline(cfg.Fetcher, cfg.Submitter, cfg.AppConfig.MaxSitemapDepth, log)
	s := &Server{
		mcpServer: server.NewMCPServer(serverName, cfg.Version, server.WithLogging()),
		cfg:       cfg,
		pipeline:  pipeline,
		runner:    orchestrate.NewRunner(cfg.AppConfig, pipeline, cfg.Discoverer, log),
		submitter: cfg.Submitter,
		log:       log,
	}

	s.registerTools()
	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	listSitesTool := mcp.NewTool("list_sites",
		mcp.WithDescription("List the configured sites with their sitemaps, endpoint and filter"),
	)
	s.mcpServer.AddTool(listSitesTool, s.handleListSites)

	getURLsTool := mcp.NewTool("get_sitemap_urls",
		mcp.WithDescription("Fetch a sitemap (or the sitemaps of a configured site) and return the filtered URLs without submitting them"),
		mcp.WithString("sitemap_url",
			mcp.Description("Sitemap location, e.g. https://example.com/sitemap.xml"),
		),
		mcp.WithString("site_key",
			mcp.Description("Use the sitemaps of a configured site instead of sitemap_url"),
		),
		withFilterParams(),
		mcp.WithBoolean("follow_nested",
			mcp.Description("Expand sitemap index files (default: true)"),
		),
	)
	s.mcpServer.AddTool(getURLsTool, s.handleGetSitemapURLs)

	submitURLsTool := mcp.NewTool("submit_urls",
		mcp.WithDescription("Submit URLs to IndexNow using the credentials of a configured site"),
		mcp.WithString("site_key",
			mcp.Required(),
			mcp.Description("Site key from the config file; supplies host and API key"),
		),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Absolute URLs on the site's host"),
		),
		mcp.WithString("endpoint",
			mcp.Description("Search engine name (indexnow, bing, naver, seznam, yandex, yep) or endpoint URL"),
		),
	)
	s.mcpServer.AddTool(submitURLsTool, s.handleSubmitURLs)

	submitSiteTool := mcp.NewTool("submit_site",
		mcp.WithDescription("Collect, filter and submit the sitemap URLs of a configured site"),
		mcp.WithString("site_key",
			mcp.Required(),
			mcp.Description("Site key from the config file"),
		),
		mcp.WithString("endpoint",
			mcp.Description("Override the configured endpoint"),
		),
	)
	s.mcpServer.AddTool(submitSiteTool, s.handleSubmitSite)

	s.log.Infof("Registered %d MCP tools", 4)
}

// withFilterParams adds the sitemap filter arguments to a tool
func withFilterParams() mcp.ToolOption {
	return func(t *mcp.Tool) {
		for _, opt := range []mcp.ToolOption{
			mcp.WithString("contains", mcp.Description("Keep URLs matching this regular expression")),
			mcp.WithString("excludes", mcp.Description("Drop URLs matching this regular expression")),
			mcp.WithNumber("skip", mcp.Description("Drop this many URLs from the start")),
			mcp.WithNumber("take", mcp.Description("Keep at most this many URLs")),
			mcp.WithString("change_frequency", mcp.Description("always, hourly, daily, weekly, monthly, yearly or never")),
			mcp.WithString("date_range", mcp.Description("Lastmod range, e.g. today, days-ago:7, after:2025-01-01, range:2025-01-01..2025-01-31")),
		} {
			opt(t)
		}
	}
}

// Run starts the MCP server with the configured transport
func (s *Server) Run() error {
	switch s.cfg.Transport {
	case "stdio":
		s.log.Info("Starting MCP server with stdio transport")
		return server.ServeStdio(s.mcpServer)
	case "sse":
		addr := fmt.Sprintf(":%d", s.cfg.Port)
		s.log.Infof("Starting MCP server with SSE transport on %s", addr)
		sseServer := server.NewSSEServer(s.mcpServer)
		return sseServer.Start(addr)
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", s.cfg.Transport)
	}
}
