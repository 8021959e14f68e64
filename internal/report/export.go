package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/apes-labs/scout-cli/internal/model"
)

// csvHeader is the flattened tabular shape of one representative
// profile.
var csvHeader = []string{
	"run_id", "query", "player", "age", "position", "club", "market_value",
	"goals", "assists", "confidence", "decision", "final_score",
}

// WriteCSV writes the header plus one row for the run's representative
// profile. A run with no profiles still writes a well-formed row.
func WriteCSV(w io.Writer, res *model.ScoutResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	if err := cw.Write(representativeRow(res)); err != nil {
		return eris.Wrap(err, "report: write csv row")
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

func representativeRow(res *model.ScoutResult) []string {
	profile, rec := res.Representative()
	if profile == nil {
		return []string{res.Metadata.RunID, res.Metadata.Query, "", "", "", "", "", "", "", "", string(model.DecisionInsufficientData), ""}
	}

	decision := ""
	finalScore := ""
	if rec != nil {
		decision = string(rec.Decision)
		finalScore = fmt.Sprintf("%.2f", rec.FinalScore)
	}

	return []string{
		res.Metadata.RunID,
		res.Metadata.Query,
		profile.DisplayName,
		intOrEmpty(profile, "age"),
		profile.Str("position"),
		profile.Str("club"),
		profile.Str("market_value"),
		intOrEmpty(profile, "goals"),
		intOrEmpty(profile, "assists"),
		fmt.Sprintf("%.0f", profile.Confidence),
		decision,
		finalScore,
	}
}

func intOrEmpty(p *model.CandidateProfile, field string) string {
	if _, ok := p.Fields[field]; !ok {
		return ""
	}
	return fmt.Sprintf("%d", p.Int(field))
}

// WriteXLSX writes a two-sheet workbook: the run summary and every
// candidate profile with its recommendation.
func WriteXLSX(w io.Writer, res *model.ScoutResult) error {
	file := xlsx.NewFile()

	if err := summarySheet(file, res); err != nil {
		return err
	}
	if err := profilesSheet(file, res); err != nil {
		return err
	}

	return eris.Wrap(file.Write(w), "report: write workbook")
}

func summarySheet(file *xlsx.File, res *model.ScoutResult) error {
	sheet, err := file.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}

	rows := [][]string{
		{"Run", res.Metadata.RunID},
		{"Query", res.Metadata.Query},
		{"Difficulty", string(res.Metadata.Indicators.Difficulty)},
		{"Queries issued", fmt.Sprintf("%d", res.Summary.QueriesIssued)},
		{"Hits after dedup", fmt.Sprintf("%d", res.Summary.HitsAfterDedup)},
		{"Pages fetched", fmt.Sprintf("%d", res.Summary.PagesFetched)},
		{"Coverage", res.Summary.DataCoverage},
	}
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, value := range cells {
			row.AddCell().Value = value
		}
	}
	return nil
}

func profilesSheet(file *xlsx.File, res *model.ScoutResult) error {
	sheet, err := file.AddSheet("Profiles")
	if err != nil {
		return eris.Wrap(err, "report: add profiles sheet")
	}

	header := sheet.AddRow()
	for _, label := range []string{"Player", "Confidence", "Hits", "Age", "Position", "Club", "Market value", "Goals", "Assists", "Decision", "Final score"} {
		header.AddCell().Value = label
	}

	for _, p := range res.PlayerProfiles {
		var rec *model.Recommendation
		for i := range res.Recommendations {
			if res.Recommendations[i].IdentityKey == p.IdentityKey {
				rec = &res.Recommendations[i]
				break
			}
		}

		row := sheet.AddRow()
		row.AddCell().Value = p.DisplayName
		row.AddCell().SetValue(p.Confidence)
		row.AddCell().SetValue(p.HitCount)
		row.AddCell().Value = intOrEmpty(&p, "age")
		row.AddCell().Value = p.Str("position")
		row.AddCell().Value = p.Str("club")
		row.AddCell().Value = p.Str("market_value")
		row.AddCell().Value = intOrEmpty(&p, "goals")
		row.AddCell().Value = intOrEmpty(&p, "assists")
		if rec != nil {
			row.AddCell().Value = string(rec.Decision)
			row.AddCell().SetValue(rec.FinalScore)
		}
	}
	return nil
}
