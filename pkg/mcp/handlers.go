package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sriram-PR/index-now/pkg/config"
	"github.com/Sriram-PR/index-now/pkg/indexnow"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// handleListSites handles the list_sites tool
func (s *Server) handleListSites(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := s.cfg.AppConfig.SiteKeys()
	sites := make([]map[string]interface{}, 0, len(keys))

	for _, key := range keys {
		siteCfg := s.cfg.AppConfig.Sites[key]
		siteInfo := map[string]interface{}{
			"key":               key,
			"host":              siteCfg.Host,
			"sitemap_locations": siteCfg.SitemapLocations,
			"discover_sitemaps": siteCfg.DiscoverSitemaps,
			"follow_nested":     config.GetEffectiveFollowNested(siteCfg),
			"endpoint":          effectiveEndpointURL(siteCfg, *s.cfg.AppConfig),
		}
		if f, err := siteCfg.Filter.SitemapFilter(); err == nil {
			siteInfo["filter"] = f.String()
		}
		sites = append(sites, siteInfo)
	}

	result := map[string]interface{}{
		"sites":       sites,
		"config_path": s.cfg.ConfigPath,
		"total_sites": len(sites),
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// handleGetSitemapURLs handles the get_sitemap_urls tool
func (s *Server) handleGetSitemapURLs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sitemapURL := request.GetString("sitemap_url", "")
	siteKey := request.GetString("site_key", "")
	followNested := request.GetBool("follow_nested", true)

	var locations []string
	switch {
	case sitemapURL != "" && siteKey != "":
		return mcp.NewToolResultError("use either sitemap_url or site_key, not both"), nil
	case sitemapURL != "":
		locations = []string{sitemapURL}
	case siteKey != "":
		siteCfg, exists := s.cfg.AppConfig.Sites[siteKey]
		if !exists {
			return mcp.NewToolResultError(fmt.Sprintf("site '%s' not found. Available sites: %v", siteKey, s.cfg.AppConfig.SiteKeys())), nil
		}
		var err error
		locations, err = s.runner.SiteLocations(ctx, siteCfg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if _, given := request.GetArguments()["follow_nested"]; !given {
			followNested = config.GetEffectiveFollowNested(siteCfg)
		}
	default:
		return mcp.NewToolResultError("sitemap_url or site_key parameter is required"), nil
	}

	filterCfg, err := filterConfigFromArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if filterCfg == nil && siteKey != "" {
		siteFilter := s.cfg.AppConfig.Sites[siteKey].Filter
		filterCfg = &siteFilter
	}
	if filterCfg == nil {
		filterCfg = &config.FilterConfig{}
	}
	f, err := filterCfg.SitemapFilter()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	urls, collection, err := s.pipeline.CollectURLs(ctx, locations, f, followNested)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect sitemap URLs: %v", err)), nil
	}

	failed := make(map[string]string, len(collection.Failed))
	for location, ferr := range collection.Failed {
		failed[location] = ferr.Error()
	}
	result := map[string]interface{}{
		"sitemaps": locations,
		"filter":   f.String(),
		"found":    len(collection.Records),
		"count":    len(urls),
		"urls":     urls,
	}
	if len(failed) > 0 {
		result["failed"] = failed
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// handleSubmitURLs handles the submit_urls tool
func (s *Server) handleSubmitURLs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	siteKey := request.GetString("site_key", "")
	if siteKey == "" {
		return mcp.NewToolResultError("site_key parameter is required"), nil
	}
	urls := request.GetStringSlice("urls", nil)
	if len(urls) == 0 {
		return mcp.NewToolResultError("urls parameter is required"), nil
	}
	siteCfg, exists := s.cfg.AppConfig.Sites[siteKey]
	if !exists {
		return mcp.NewToolResultError(fmt.Sprintf("site '%s' not found. Available sites: %v", siteKey, s.cfg.AppConfig.SiteKeys())), nil
	}

	endpoint := request.GetString("endpoint", config.GetEffectiveEndpoint(siteCfg, *s.cfg.AppConfig))
	status, err := s.submitter.SubmitURLs(ctx, siteCfg.Authentication(), urls, endpoint)
	if err != nil && status == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("submission failed: %v", err)), nil
	}

	result := submissionResult(siteKey, endpoint, status, err)
	result["submitted"] = len(urls)
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// handleSubmitSite handles the submit_site tool
func (s *Server) handleSubmitSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	siteKey := request.GetString("site_key", "")
	if siteKey == "" {
		return mcp.NewToolResultError("site_key parameter is required"), nil
	}

	req, err := s.runner.SiteRequest(ctx, siteKey)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if endpoint := request.GetString("endpoint", ""); endpoint != "" {
		req.Endpoint = endpoint
	}

	outcome, err := s.pipeline.SubmitSitemaps(ctx, req)
	if err != nil && outcome.Status == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("submission failed: %v", err)), nil
	}

	result := submissionResult(siteKey, req.Endpoint, outcome.Status, err)
	result["sitemaps"] = req.Locations
	result["filter"] = req.Filter.String()
	result["found"] = outcome.Found
	result["submitted"] = outcome.Submitted
	if len(outcome.Failed) > 0 {
		result["failed_sitemaps"] = outcome.Failed
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// submissionResult describes an IndexNow or pipeline status for a tool response
func submissionResult(siteKey, endpoint string, status int, err error) map[string]interface{} {
	endpointURL, resolveErr := indexnow.ResolveEndpoint(endpoint)
	if resolveErr != nil {
		endpointURL = endpoint
	}
	result := map[string]interface{}{
		"site_key":    siteKey,
		"endpoint":    endpointURL,
		"status_code": status,
		"status":      indexnow.DescribeStatus(status),
		"success":     err == nil && indexnow.IsSuccess(status),
	}
	if err != nil {
		result["error"] = err.Error()
		result["error_category"] = utils.CategorizeError(err)
	}
	return result
}

// filterConfigFromArgs reads the filter arguments. Returns nil if none were given
func filterConfigFromArgs(request mcp.CallToolRequest) (*config.FilterConfig, error) {
	args := request.GetArguments()
	var fc config.FilterConfig
	given := false

	stringArg := func(name string) *string {
		if _, ok := args[name]; !ok {
			return nil
		}
		given = true
		return utils.Ptr(request.GetString(name, ""))
	}
	intArg := func(name string) (*int, error) {
		raw, ok := args[name]
		if !ok {
			return nil, nil
		}
		given = true
		n, ok := raw.(float64)
		if !ok || n != float64(int(n)) {
			return nil, fmt.Errorf("%s must be a whole number", name)
		}
		return utils.Ptr(int(n)), nil
	}

	fc.Contains = stringArg("contains")
	fc.Excludes = stringArg("excludes")
	fc.ChangeFrequency = stringArg("change_frequency")
	fc.DateRange = stringArg("date_range")
	var err error
	if fc.Skip, err = intArg("skip"); err != nil {
		return nil, err
	}
	if fc.Take, err = intArg("take"); err != nil {
		return nil, err
	}

	if !given {
		return nil, nil
	}
	return &fc, nil
}

func effectiveEndpointURL(siteCfg config.SiteConfig, appCfg config.AppConfig) string {
	endpoint := config.GetEffectiveEndpoint(siteCfg, appCfg)
	if resolved, err := indexnow.ResolveEndpoint(endpoint); err == nil {
		return resolved
	}
	return endpoint
}

// formatJSON formats data as an indented JSON string
func formatJSON(data map[string]interface{}) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}", err.Error())
	}
	return string(b)
}
