package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// statColumns maps recognizable header labels to profile fields.
var statColumns = map[string]string{
	"goals":       "goals",
	"assists":     "assists",
	"age":         "age",
	"apps":        "appearances",
	"appearances": "appearances",
	"matches":     "appearances",
}

// fromTables scans stat tables for columns whose header names a known
// numeric field and reads the value from the first data row. Fields
// already extracted are left alone.
func (e *Extractor) fromTables(tree *goquery.Document, fields map[string]any) {
	tree.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		columns := make(map[int]string)
		rows.First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
			label := strings.ToLower(strings.TrimSpace(cell.Text()))
			if field, ok := statColumns[label]; ok {
				columns[i] = field
			}
		})
		if len(columns) == 0 {
			return
		}

		rows.Eq(1).Find("td").Each(func(i int, cell *goquery.Selection) {
			field, ok := columns[i]
			if !ok {
				return
			}
			if _, done := fields[field]; done {
				return
			}
			if v, ok := toInt(strings.TrimSpace(cell.Text())); ok {
				fields[field] = v
			}
		})
	})
}
