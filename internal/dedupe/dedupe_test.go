package dedupe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apes-labs/scout-cli/internal/model"
)

func hit(url, title, snippet string) model.SearchHit {
	return model.SearchHit{URL: url, Title: title, Snippet: snippet}
}

func TestHitsRemovesDuplicatesAcrossQueries(t *testing.T) {
	// The same profile page surfacing under two expanded queries.
	hits := []model.SearchHit{
		hit("https://tm.example/messi", "Lionel Messi - Profile", "Age: 36"),
		hit("https://ws.example/messi", "Messi statistics", "Rating: 8.1"),
		hit("https://tm.example/messi", "Lionel Messi - Profile", "Age: 36"),
	}

	out := Hits(hits)

	assert.Len(t, out, 2)
	assert.Equal(t, "https://tm.example/messi", out[0].URL)
	assert.Equal(t, "https://ws.example/messi", out[1].URL)
}

func TestHitsFirstOccurrenceWinsAndOrderIsPreserved(t *testing.T) {
	first := hit("https://a.example", "Title", "Snippet")
	first.SourceLabel = "transfermarkt"
	dup := hit("https://a.example", "Title", "Snippet")
	dup.SourceLabel = "generic"

	out := Hits([]model.SearchHit{first, hit("https://b.example", "B", "b"), dup})

	assert.Len(t, out, 2)
	assert.Equal(t, "transfermarkt", out[0].SourceLabel)
	assert.Equal(t, "https://b.example", out[1].URL)
}

func TestHitsSameURLAndTitleCollapseDespiteSnippetTail(t *testing.T) {
	common := strings.Repeat("Age: 24, Goals: 15. ", 4) // 80 chars

	a := hit("https://tm.example/messi", "Lionel Messi - Profile", common+"updated today")
	b := hit("https://tm.example/messi", "Lionel Messi - Profile", common+"cached copy")

	out := Hits([]model.SearchHit{a, b})

	assert.Len(t, out, 1)
	assert.Equal(t, a.Snippet, out[0].Snippet)
}

func TestHitsIdempotent(t *testing.T) {
	hits := []model.SearchHit{
		hit("https://a.example", "A", "a"),
		hit("https://a.example", "A", "a"),
		hit("https://b.example", "B", "b"),
	}

	once := Hits(hits)
	twice := Hits(once)

	assert.Equal(t, once, twice)
}

func TestHitsDistinguishesBeyondSharedPrefixURL(t *testing.T) {
	longTitle := strings.Repeat("x", 60)

	// Same URL and long identical title prefix, differing only past the
	// signature window: treated as duplicates.
	a := hit("https://a.example", longTitle+"-one", "same")
	b := hit("https://a.example", longTitle+"-two", "same")

	out := Hits([]model.SearchHit{a, b})
	assert.Len(t, out, 1)

	// Different URLs always survive.
	c := hit("https://c.example", longTitle, "same")
	out = Hits([]model.SearchHit{a, c})
	assert.Len(t, out, 2)
}

func TestHitsEmpty(t *testing.T) {
	assert.Empty(t, Hits(nil))
}
