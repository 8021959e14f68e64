package profile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apes-labs/scout-cli/internal/model"
)

func namedHit(name string, fetched bool, fields map[string]any) model.SearchHit {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["structured_name"] = name
	return model.SearchHit{
		URL:             "https://example.test/" + name,
		SourceLabel:     "generic",
		ExtractedFields: fields,
		FetchSucceeded:  fetched,
	}
}

func TestBuildGroupsByStructuredName(t *testing.T) {
	hits := []model.SearchHit{
		namedHit("Kylian Mbappé", true, map[string]any{"goals": 20}),
		namedHit("Kylian Mbappe", true, map[string]any{"goals": 27}),
		namedHit("Erling Haaland", true, map[string]any{"goals": 30}),
	}

	profiles := Build(hits, "top scorers")

	require.Len(t, profiles, 2)
	// Diacritics fold into one identity.
	assert.Equal(t, "kylian-mbappe", profiles[0].IdentityKey)
	assert.Equal(t, "Kylian Mbappé", profiles[0].DisplayName)
	assert.Equal(t, 2, profiles[0].HitCount)
}

func TestBuildFallsBackToCandidateName(t *testing.T) {
	hits := []model.SearchHit{{
		URL:         "https://example.test/article",
		SourceLabel: "generic",
		ExtractedFields: map[string]any{
			"candidate_names": []string{"Jude Bellingham", "Carlo Ancelotti"},
			"goals":           12,
		},
		FetchSucceeded: true,
	}}

	profiles := Build(hits, "madrid midfielder")

	require.Len(t, profiles, 1)
	assert.Equal(t, "jude-bellingham", profiles[0].IdentityKey)
	assert.Equal(t, "Jude Bellingham", profiles[0].DisplayName)
}

func TestBuildCompositeKeyFallback(t *testing.T) {
	// No names anywhere: hits with matching age/position share a group,
	// a different age opens a new one.
	hits := []model.SearchHit{
		{ExtractedFields: map[string]any{"age": 17, "position": "Attacking Midfielder"}},
		{ExtractedFields: map[string]any{"age": 17, "position": "Attacking Midfielder"}},
		{ExtractedFields: map[string]any{"age": 19, "position": "Attacking Midfielder"}},
	}

	profiles := Build(hits, "trequartista argentino u17")

	require.Len(t, profiles, 2)
	assert.Equal(t, "Unknown player", profiles[0].DisplayName)
	assert.Equal(t, 2, profiles[0].HitCount)
	assert.Equal(t, 1, profiles[1].HitCount)
}

func TestBuildConfidenceAccumulation(t *testing.T) {
	fetched := namedHit("Lionel Messi", true, nil)
	snippetOnly := namedHit("Lionel Messi", false, nil)

	profiles := Build([]model.SearchHit{fetched}, "q")
	require.Len(t, profiles, 1)
	assert.Equal(t, 20.0, profiles[0].Confidence)

	profiles = Build([]model.SearchHit{fetched, snippetOnly}, "q")
	assert.Equal(t, 25.0, profiles[0].Confidence)

	// Monotonic in corroborating hits, capped at 100.
	var many []model.SearchHit
	prev := 0.0
	for i := 0; i < 8; i++ {
		many = append(many, namedHit("Lionel Messi", true, nil))
		got := Build(many, "q")[0].Confidence
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 100.0, prev)
}

func TestBuildNumericFieldsKeepMaximum(t *testing.T) {
	hits := []model.SearchHit{
		namedHit("Lionel Messi", true, map[string]any{"goals": 15, "age": 24}),
		namedHit("Lionel Messi", true, map[string]any{"goals": 11, "age": 23}),
		namedHit("Lionel Messi", true, map[string]any{"goals": 18, "age": 24}),
	}

	profiles := Build(hits, "q")

	require.Len(t, profiles, 1)
	assert.Equal(t, 18, profiles[0].Int("goals"))
	assert.Equal(t, 24, profiles[0].Int("age"))
}

func TestBuildTextFieldsKeepMode(t *testing.T) {
	hits := []model.SearchHit{
		namedHit("Lionel Messi", true, map[string]any{"position": "Forward", "club": "Inter Miami"}),
		namedHit("Lionel Messi", true, map[string]any{"position": "Right Winger", "club": "PSG"}),
		namedHit("Lionel Messi", true, map[string]any{"position": "Forward"}),
	}

	profiles := Build(hits, "q")

	require.Len(t, profiles, 1)
	assert.Equal(t, "Forward", profiles[0].Str("position"))
	// A tie resolves to the first-seen value.
	assert.Equal(t, "Inter Miami", profiles[0].Str("club"))
}

func TestBuildStructuredAgeFoldsIntoAge(t *testing.T) {
	hits := []model.SearchHit{
		namedHit("Lionel Messi", true, map[string]any{"structured_age": 36}),
		namedHit("Lionel Messi", true, map[string]any{"age": 35}),
	}

	profiles := Build(hits, "q")

	require.Len(t, profiles, 1)
	assert.Equal(t, 36, profiles[0].Int("age"))
}

func TestBuildFieldConfidenceGrowsWithObservations(t *testing.T) {
	one := Build([]model.SearchHit{
		namedHit("Lionel Messi", true, map[string]any{"position": "Forward"}),
	}, "q")
	require.Len(t, one, 1)
	assert.Equal(t, 25.0, one[0].Fields["position"].Confidence)

	var hits []model.SearchHit
	for i := 0; i < 5; i++ {
		hits = append(hits, namedHit("Lionel Messi", true, map[string]any{"position": "Forward"}))
	}
	many := Build(hits, "q")
	assert.Equal(t, 95.0, many[0].Fields["position"].Confidence)
}

func TestBuildSortsByConfidenceAndCaps(t *testing.T) {
	var hits []model.SearchHit
	// Seven single-hit identities plus one double-hit identity.
	for i := 0; i < 7; i++ {
		hits = append(hits, namedHit(fmt.Sprintf("Player Number%d", i), true, nil))
	}
	hits = append(hits,
		namedHit("Star Candidate", true, nil),
		namedHit("Star Candidate", true, nil),
	)

	profiles := Build(hits, "q")

	require.Len(t, profiles, MaxProfiles)
	assert.Equal(t, "Star Candidate", profiles[0].DisplayName)
	// Ties keep group formation order.
	assert.Equal(t, "Player Number0", profiles[1].DisplayName)
}

func TestBuildSkipsQuotaPlaceholders(t *testing.T) {
	hits := []model.SearchHit{
		{QuotaPlaceholder: true, SourceLabel: "quota"},
		namedHit("Lionel Messi", true, nil),
	}

	profiles := Build(hits, "q")

	require.Len(t, profiles, 1)
	assert.Equal(t, "Lionel Messi", profiles[0].DisplayName)
}

func TestBuildDeterministic(t *testing.T) {
	hits := []model.SearchHit{
		namedHit("Lionel Messi", true, map[string]any{"goals": 15, "assists": 9, "age": 24, "position": "Forward"}),
		namedHit("Lionel Messi", false, map[string]any{"goals": 12, "club": "Inter Miami"}),
		namedHit("Erling Haaland", true, map[string]any{"goals": 30}),
	}

	first := Build(hits, "top scorers")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build(hits, "top scorers"))
	}
}

func TestBuildEmpty(t *testing.T) {
	assert.Empty(t, Build(nil, "q"))
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "kylian-mbappe", foldKey("Kylian Mbappé"))
	assert.Equal(t, "joao-felix", foldKey("  João   Félix "))
	assert.Equal(t, "plain-name", foldKey("plain name"))
}
