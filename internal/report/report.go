// Package report renders a scouting result into the formats handed to
// analysts: a markdown dossier, a flattened CSV row for the
// representative profile, and a multi-sheet workbook.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/apes-labs/scout-cli/internal/model"
)

// fieldOrder fixes the display order of profile attributes in every
// rendered format.
var fieldOrder = []string{
	"age", "position", "club", "market_value",
	"goals", "assists", "appearances", "rating",
}

var fieldLabels = map[string]string{
	"age":          "Age",
	"position":     "Position",
	"club":         "Club",
	"market_value": "Market value",
	"goals":        "Goals",
	"assists":      "Assists",
	"appearances":  "Appearances",
	"rating":       "Rating",
}

// Markdown renders the dossier text for one completed run.
func Markdown(res *model.ScoutResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Scouting Report: %s\n\n", res.Metadata.Query)
	fmt.Fprintf(&b, "Run `%s`, generated %s.\n\n",
		res.Metadata.RunID, res.Metadata.GeneratedAt.Format("2006-01-02 15:04 MST"))

	writeAnalysis(&b, res)

	profile, rec := res.Representative()
	if profile == nil {
		b.WriteString("## Player Profile\n\nNo profiles found.\n\n")
		writeSources(&b, res)
		return b.String()
	}

	writeProfile(&b, profile)
	writeMarketIntelligence(&b, profile)
	if rec != nil {
		writeRecommendation(&b, rec)
	}
	writeAlternatives(&b, res)
	writeSources(&b, res)

	return b.String()
}

func writeAnalysis(b *strings.Builder, res *model.ScoutResult) {
	ind := res.Metadata.Indicators

	b.WriteString("## Search Analysis\n\n")
	fmt.Fprintf(b, "- Difficulty: %s\n", ind.Difficulty)
	if ind.IsSpecificName {
		b.WriteString("- Query names a specific player\n")
	}
	if ind.Youth {
		b.WriteString("- Youth prospect search\n")
	}
	if ind.Position != "" {
		fmt.Fprintf(b, "- Position: %s\n", ind.Position)
	}
	if ind.Nationality != "" {
		fmt.Fprintf(b, "- Nationality: %s\n", ind.Nationality)
	}
	if ind.League != "" {
		fmt.Fprintf(b, "- League: %s\n", ind.League)
	}
	if len(ind.Attributes) > 0 {
		fmt.Fprintf(b, "- Attributes: %s\n", strings.Join(ind.Attributes, ", "))
	}
	fmt.Fprintf(b, "- Queries issued: %d, hits after dedup: %d\n\n",
		res.Summary.QueriesIssued, res.Summary.HitsAfterDedup)
}

func writeProfile(b *strings.Builder, p *model.CandidateProfile) {
	fmt.Fprintf(b, "## Player Profile: %s\n\n", p.DisplayName)
	fmt.Fprintf(b, "Aggregate confidence %.0f%% from %d corroborating hits.\n\n", p.Confidence, p.HitCount)

	b.WriteString("| Attribute | Value | Confidence | Source |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, field := range fieldOrder {
		fv, ok := p.Fields[field]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "| %s | %v | %.0f%% | %s |\n",
			fieldLabels[field], fv.Value, fv.Confidence, fv.Source)
	}
	b.WriteString("\n")
}

func writeMarketIntelligence(b *strings.Builder, p *model.CandidateProfile) {
	value := p.Str("market_value")
	club := p.Str("club")
	if value == "" && club == "" {
		return
	}

	b.WriteString("## Market Intelligence\n\n")
	if value != "" {
		fmt.Fprintf(b, "- Estimated market value: %s (best-effort, verify before negotiating)\n", value)
	}
	if club != "" {
		fmt.Fprintf(b, "- Current club: %s\n", club)
	}
	b.WriteString("\n")
}

func writeRecommendation(b *strings.Builder, rec *model.Recommendation) {
	b.WriteString("## Scouting Recommendation\n\n")
	fmt.Fprintf(b, "**%s** — %s\n\n", strings.ToUpper(string(rec.Decision)), rec.Reasoning)
	fmt.Fprintf(b, "- Performance score: %.1f\n", rec.PerformanceScore)
	fmt.Fprintf(b, "- Final score: %.1f\n", rec.FinalScore)
	fmt.Fprintf(b, "- Confidence: %.0f%%\n\n", rec.ConfidencePercent)
}

func writeAlternatives(b *strings.Builder, res *model.ScoutResult) {
	if len(res.PlayerProfiles) <= 1 {
		return
	}

	b.WriteString("## Other Candidates\n\n")
	for _, p := range res.PlayerProfiles[1:] {
		decision := model.DecisionInsufficientData
		for _, rec := range res.Recommendations {
			if rec.IdentityKey == p.IdentityKey {
				decision = rec.Decision
				break
			}
		}
		fmt.Fprintf(b, "- %s (confidence %.0f%%, %s)\n", p.DisplayName, p.Confidence, decision)
	}
	b.WriteString("\n")
}

func writeSources(b *strings.Builder, res *model.ScoutResult) {
	b.WriteString("## Data Sources\n\n")
	fmt.Fprintf(b, "- Coverage: %s\n", res.Summary.DataCoverage)
	fmt.Fprintf(b, "- Pages fetched: %d (failures: %d)\n",
		res.Summary.PagesFetched, res.Summary.FetchFailures)
	if res.Summary.QuotaExceeded > 0 {
		fmt.Fprintf(b, "- Provider quota refusals: %d (results are partial)\n", res.Summary.QuotaExceeded)
	}

	labels := make([]string, 0, len(res.Summary.SourceCounts))
	for label := range res.Summary.SourceCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(b, "- %s: %d hits\n", label, res.Summary.SourceCounts[label])
	}
	b.WriteString("\nAll statistics are best-effort estimates and require human verification.\n")
}
