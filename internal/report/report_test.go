package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apes-labs/scout-cli/internal/model"
)

func sampleResult() *model.ScoutResult {
	return &model.ScoutResult{
		Metadata: model.ReportMeta{
			RunID: "run-123",
			Query: "Lionel Messi",
			Indicators: model.IndicatorSet{
				IsSpecificName: true,
				Difficulty:     model.DifficultyEasy,
			},
			GeneratedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		},
		PlayerProfiles: []model.CandidateProfile{{
			IdentityKey: "lionel-messi",
			DisplayName: "Lionel Messi",
			Confidence:  60,
			HitCount:    3,
			Sources:     []string{"transfermarkt", "generic"},
			Fields: map[string]model.FieldValue{
				"age":          {Value: 24, Confidence: 50, Source: "transfermarkt"},
				"goals":        {Value: 15, Confidence: 75, Source: "transfermarkt"},
				"assists":      {Value: 9, Confidence: 50, Source: "generic"},
				"position":     {Value: "Forward", Confidence: 50, Source: "generic"},
				"club":         {Value: "Inter Miami", Confidence: 25, Source: "generic"},
				"market_value": {Value: "€35.00M", Confidence: 25, Source: "transfermarkt"},
			},
		}},
		Recommendations: []model.Recommendation{{
			IdentityKey:       "lionel-messi",
			DisplayName:       "Lionel Messi",
			Decision:          model.DecisionStrongAcquire,
			Reasoning:         "Elite output of 24 goal contributions backed by well-corroborated sources.",
			ConfidencePercent: 60,
			PerformanceScore:  26.4,
			FinalScore:        23.2,
		}},
		Summary: model.SearchSummary{
			QueriesIssued:  2,
			HitsTotal:      5,
			HitsAfterDedup: 3,
			PagesFetched:   2,
			SourceCounts:   map[string]int{"transfermarkt": 2, "generic": 1},
			DataCoverage:   "3 corroborated hits across 2 sources",
		},
	}
}

func emptyResult() *model.ScoutResult {
	return &model.ScoutResult{
		Metadata: model.ReportMeta{RunID: "run-000", Query: "ghost player"},
		Summary:  model.SearchSummary{DataCoverage: "No profiles found"},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleResult())

	assert.Contains(t, md, "# Scouting Report: Lionel Messi")
	assert.Contains(t, md, "## Search Analysis")
	assert.Contains(t, md, "## Player Profile: Lionel Messi")
	assert.Contains(t, md, "| Goals | 15 | 75% | transfermarkt |")
	assert.Contains(t, md, "## Market Intelligence")
	assert.Contains(t, md, "€35.00M")
	assert.Contains(t, md, "## Scouting Recommendation")
	assert.Contains(t, md, "STRONG ACQUIRE")
	assert.Contains(t, md, "## Data Sources")
	assert.Contains(t, md, "human verification")
}

func TestMarkdownNoProfiles(t *testing.T) {
	md := Markdown(emptyResult())

	assert.Contains(t, md, "No profiles found")
	assert.NotContains(t, md, "## Scouting Recommendation")
}

func TestMarkdownListsOtherCandidates(t *testing.T) {
	res := sampleResult()
	res.PlayerProfiles = append(res.PlayerProfiles, model.CandidateProfile{
		IdentityKey: "second-choice",
		DisplayName: "Second Choice",
		Confidence:  25,
	})

	md := Markdown(res)

	assert.Contains(t, md, "## Other Candidates")
	assert.Contains(t, md, "Second Choice")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, csvHeader, records[0])
	row := records[1]
	assert.Equal(t, "run-123", row[0])
	assert.Equal(t, "Lionel Messi", row[2])
	assert.Equal(t, "24", row[3])
	assert.Equal(t, "15", row[7])
	assert.Equal(t, "strong acquire", row[10])
}

func TestWriteCSVNoProfiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, emptyResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "insufficient data", records[1][10])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResult()))

	// Workbooks are zip archives; checking the magic plus size is
	// enough without round-tripping the file.
	assert.True(t, strings.HasPrefix(buf.String(), "PK"))
	assert.Greater(t, buf.Len(), 500)
}

func TestWriteXLSXNoProfiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, emptyResult()))
	assert.True(t, strings.HasPrefix(buf.String(), "PK"))
}
