package indexnow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Sriram-PR/index-now/pkg/parse"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// Search engine endpoints implementing the IndexNow protocol
const (
	EndpointIndexNow = "https://api.indexnow.org/indexnow"
	EndpointBing     = "https://www.bing.com/indexnow"
	EndpointNaver    = "https://searchadvisor.naver.com/indexnow"
	EndpointSeznam   = "https://search.seznam.cz/indexnow"
	EndpointYandex   = "https://yandex.com/indexnow"
	EndpointYep      = "https://indexnow.yep.com/indexnow"
)

// DefaultEndpoint is used when no endpoint is configured; it shares submissions with all participating engines
const DefaultEndpoint = EndpointIndexNow

var namedEndpoints = map[string]string{
	"indexnow":       EndpointIndexNow,
	"bing":           EndpointBing,
	"microsoft_bing": EndpointBing,
	"naver":          EndpointNaver,
	"seznam":         EndpointSeznam,
	"yandex":         EndpointYandex,
	"yep":            EndpointYep,
}

// ResolveEndpoint turns a search engine name (e.g. "bing") or a custom http(s) URL into the submission URL
// An empty value selects DefaultEndpoint
func ResolveEndpoint(nameOrURL string) (string, error) {
	value := strings.TrimSpace(nameOrURL)
	if value == "" {
		return DefaultEndpoint, nil
	}
	if endpoint, ok := namedEndpoints[strings.ToLower(value)]; ok {
		return endpoint, nil
	}
	if strings.Contains(value, "://") {
		if _, parsed, err := parse.ParseAndNormalize(value); err == nil {
			return parsed.String(), nil
		}
	}
	return "", fmt.Errorf("%w: '%s' (known: %s, or an http(s) URL)", utils.ErrUnknownEndpoint, nameOrURL, strings.Join(EndpointNames(), ", "))
}

// EndpointNames lists the search engine names accepted by ResolveEndpoint
func EndpointNames() []string {
	names := make([]string, 0, len(namedEndpoints))
	for name := range namedEndpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
