package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apes-labs/scout-cli/internal/model"
)

func TestAnalyzeSpecificName(t *testing.T) {
	ind := Analyze("Lionel Messi")

	assert.True(t, ind.IsSpecificName)
	assert.Equal(t, model.DifficultyEasy, ind.Difficulty)
	assert.False(t, ind.Youth)
}

func TestAnalyzeYouthCriterion(t *testing.T) {
	ind := Analyze("trequartista argentino u17")

	assert.True(t, ind.Youth)
	assert.Equal(t, "Attacking Midfielder", ind.Position)
	assert.Equal(t, "Argentina", ind.Nationality)
	assert.False(t, ind.IsSpecificName)
	// Youth without a league outranks the position+nationality rule.
	assert.Equal(t, model.DifficultyHard, ind.Difficulty)
}

func TestAnalyzeDifficulty(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  model.Difficulty
	}{
		{"specific name wins", "Victor Osimhen", model.DifficultyEasy},
		{"youth with league is not hard by youth rule", "striker brazilian u19 serie a", model.DifficultyMedium},
		{"position plus nationality", "centrocampista spagnolo", model.DifficultyMedium},
		{"position only", "striker", model.DifficultyHard},
		{"nothing matches", "good player somewhere", model.DifficultyHard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Analyze(tc.query).Difficulty)
		})
	}
}

func TestAnalyzeIndicators(t *testing.T) {
	ind := Analyze("left-footed striker argentino serie c 2005")

	assert.Equal(t, "Striker", ind.Position)
	assert.Equal(t, "Argentina", ind.Nationality)
	assert.Equal(t, "serie c", ind.League)
	assert.Contains(t, ind.Attributes, "left-footed")
	assert.Equal(t, 2005, ind.Year)
}

func TestLooksLikeNameBoundary(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"lionel messi", false}, // zero capitalized tokens never qualifies
		{"Messi", false},
		{"Lionel Messi", true},
		{"Khvicha Kvaratskhelia", true},
		{"Serie C Premier League", false}, // stoplist terms excluded
		{"Victor Osimhen Serie A", true},
		{"", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, looksLikeName(tc.query), "looksLikeName(%q)", tc.query)
	}
}

func TestAnalyzeNeverMutatesFlagsOnNoMatch(t *testing.T) {
	ind := Analyze("xyzzy")

	assert.False(t, ind.Youth)
	assert.Empty(t, ind.Position)
	assert.Empty(t, ind.Nationality)
	assert.Empty(t, ind.League)
	assert.Empty(t, ind.Attributes)
	assert.Zero(t, ind.Year)
}
