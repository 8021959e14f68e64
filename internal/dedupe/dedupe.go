// Package dedupe removes duplicate search hits across the expanded
// query fan-out.
package dedupe

import (
	"strings"

	"github.com/apes-labs/scout-cli/internal/model"
)

// prefixLen bounds how much of the title and snippet feed the
// signature; trackers and session junk past this point would otherwise
// split obvious duplicates.
const prefixLen = 50

// Hits filters a hit list down to its first occurrence per signature,
// preserving input order. Running it over its own output is a no-op.
func Hits(hits []model.SearchHit) []model.SearchHit {
	if len(hits) == 0 {
		return hits
	}

	seen := make(map[string]bool, len(hits))
	out := make([]model.SearchHit, 0, len(hits))
	for _, hit := range hits {
		sig := signature(hit)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, hit)
	}
	return out
}

func signature(hit model.SearchHit) string {
	return strings.Join([]string{
		hit.URL,
		prefix(hit.Title),
		prefix(hit.Snippet),
	}, "|")
}

func prefix(s string) string {
	if len(s) > prefixLen {
		return s[:prefixLen]
	}
	return s
}
