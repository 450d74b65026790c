package filter

import (
	"sort"

	"github.com/Sriram-PR/index-now/pkg/models"
)

// MergeDeduped returns the union of a and b without duplicates, sorted lexicographically
func MergeDeduped(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, u := range list {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			merged = append(merged, u)
		}
	}
	sort.Strings(merged)
	return merged
}

// MergeRecords is MergeDeduped for full records: the first record seen for a location wins,
// and the result is sorted by location so the metadata survives for later filtering
func MergeRecords(a, b []models.SitemapURL) []models.SitemapURL {
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]models.SitemapURL, 0, len(a)+len(b))
	for _, list := range [][]models.SitemapURL{a, b} {
		for _, r := range list {
			if _, dup := seen[r.Loc]; dup {
				continue
			}
			seen[r.Loc] = struct{}{}
			merged = append(merged, r)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Loc < merged[j].Loc })
	return merged
}
