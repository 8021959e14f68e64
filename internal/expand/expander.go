// Package expand derives alternative phrasings for a scouting query to
// widen recall. Output is deterministic, bounded, and never duplicates
// the original query.
package expand

import (
	"strings"

	"github.com/apes-labs/scout-cli/internal/model"
)

// MaxQueries bounds the number of queries handed to the search
// orchestrator, original included, to respect provider rate limits.
const MaxQueries = 4

// ModeAuto lets the expander choose site scoping from the indicators.
const ModeAuto = "auto"

// siteByCategory is the static site-scoping list per source category.
var siteByCategory = map[string]string{
	"transfermarkt": "transfermarkt.com",
	"whoscored":     "whoscored.com",
	"fotmob":        "fotmob.com",
	"espn":          "espn.com",
}

// youthContexts are appended for youth-flagged queries.
var youthContexts = []string{
	"youth tournament",
	"academy prospect profile",
}

// hardContexts are appended for hard queries to steer results toward
// statistics and database pages.
var hardContexts = []string{
	"football player statistics",
	"player database profile",
}

// Expand returns the ordered query list for the orchestrator. The
// original query always comes first; expansions follow in a fixed
// precedence (site scoping, youth context, hard context) and the list is
// truncated to MaxQueries.
func Expand(query string, ind model.IndicatorSet, mode string) []string {
	queries := []string{query}

	add := func(q string) {
		if len(queries) >= MaxQueries {
			return
		}
		for _, existing := range queries {
			if existing == q {
				return
			}
		}
		queries = append(queries, q)
	}

	if mode != "" && mode != ModeAuto {
		if site, ok := siteByCategory[mode]; ok {
			add("site:" + site + " " + query)
		}
	} else if ind.IsSpecificName {
		// Named players resolve best on the stats databases.
		add("site:" + siteByCategory["transfermarkt"] + " " + query)
	}

	if ind.Youth {
		for _, ctx := range youthContexts {
			add(query + " " + ctx)
		}
	}

	if ind.Difficulty == model.DifficultyHard {
		for _, ctx := range hardContexts {
			add(query + " " + ctx)
		}
	}

	return queries
}

// SiteFor returns the scoped site for a category, or "" when the
// category has no site-scoping entry.
func SiteFor(category string) string {
	return siteByCategory[strings.ToLower(category)]
}
