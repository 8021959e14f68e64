// Package extract turns fetched documents and result snippets into
// field->value maps. Extraction precedence per field: known structured
// shapes, then ordered pattern rules, then tabular scans. A single
// field's failure never aborts the rest of the pass.
package extract

import (
	"strings"

	"github.com/apes-labs/scout-cli/internal/patterns"
	"github.com/apes-labs/scout-cli/pkg/webpage"
)

// FieldStructuredName holds an explicitly declared person name (e.g.
// from an embedded metadata record).
const FieldStructuredName = "structured_name"

// FieldCandidateNames holds opportunistically harvested person names.
const FieldCandidateNames = "candidate_names"

// sourceSubstrings resolve an origin URL to a source category.
var sourceSubstrings = []struct {
	substr string
	label  string
}{
	{"transfermarkt", "transfermarkt"},
	{"whoscored", "whoscored"},
	{"fotmob", "fotmob"},
	{"espn", "espn"},
}

// DetectSource returns the source category for an origin URL, falling
// back to the generic category.
func DetectSource(rawURL string) string {
	lower := strings.ToLower(rawURL)
	for _, s := range sourceSubstrings {
		if strings.Contains(lower, s.substr) {
			return s.label
		}
	}
	return patterns.GenericCategory
}

// Extractor applies the pattern library to parsed documents.
type Extractor struct {
	lib *patterns.Library
}

// New creates an Extractor over the given pattern library.
func New(lib *patterns.Library) *Extractor {
	return &Extractor{lib: lib}
}

// Extract produces the field map for one parsed document. The element
// tree is optional; snippet-only documents skip the structured and
// tabular passes.
func (e *Extractor) Extract(doc *webpage.Document, category string) map[string]any {
	fields := make(map[string]any)
	if doc == nil {
		return fields
	}

	if doc.Tree != nil {
		e.structured(doc.Tree, category, fields)
	}
	e.fromText(doc.PlainText, category, fields)
	if doc.Tree != nil {
		e.fromTables(doc.Tree, fields)
	}

	if names := HarvestNames(doc.PlainText); len(names) > 0 {
		fields[FieldCandidateNames] = names
	}

	return fields
}

// ExtractSnippet runs pattern extraction over a short result snippet.
func (e *Extractor) ExtractSnippet(snippet, category string) map[string]any {
	return e.Extract(webpage.ParseSnippet(snippet), category)
}

// fromText applies the category's ordered pattern rules to plain text,
// filling only fields not already set by the structured pass.
func (e *Extractor) fromText(text, category string, fields map[string]any) {
	if text == "" {
		return
	}
	for _, field := range e.lib.Fields(category) {
		if _, done := fields[field]; done {
			continue
		}
		for _, rule := range e.lib.Rules(category, field) {
			m := rule.Re.FindStringSubmatch(text)
			if m == nil || rule.Group >= len(m) {
				continue
			}
			if value, ok := coerce(field, m[rule.Group]); ok {
				fields[field] = value
				break
			}
			// Coercion failures drop the match and try the next rule.
		}
	}
}

// coerce converts a raw capture to the field's value type. Returns
// false when the capture cannot be represented, in which case the
// field is dropped rather than propagated.
func coerce(field, raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	switch {
	case patterns.IsNumeric(field):
		return toInt(raw)
	case field == "market_value":
		return NormalizeMarketValue(raw)
	case field == "rating":
		return toFloat(raw)
	default:
		return raw, true
	}
}
