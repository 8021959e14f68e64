package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	marketValueRe = regexp.MustCompile(`€([\d.]+)`)
	firstIntRe    = regexp.MustCompile(`\d{1,3}`)
	floatRe       = regexp.MustCompile(`\d+\.\d+`)
)

// structured reads the well-known element shapes for the category
// before pattern matching runs. Structured values win over anything the
// text pass would find later.
func (e *Extractor) structured(tree *goquery.Document, category string, fields map[string]any) {
	switch category {
	case "transfermarkt":
		e.transfermarktShapes(tree, fields)
	case "whoscored":
		e.whoscoredShapes(tree, fields)
	}
	e.personRecord(tree, fields)
	e.metaDescription(tree, fields)
}

// transfermarktShapes picks market value, age and position out of the
// profile header markup.
func (e *Extractor) transfermarktShapes(tree *goquery.Document, fields map[string]any) {
	tree.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		lower := strings.ToLower(class)
		if !strings.Contains(lower, "market") || !strings.Contains(lower, "value") {
			return true
		}
		m := marketValueRe.FindStringSubmatch(s.Text())
		if m == nil {
			return true
		}
		if value, ok := NormalizeMarketValue(m[1]); ok {
			fields["market_value"] = value
			return false
		}
		return true
	})

	tree.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), "Age:") {
			return true
		}
		// The value sits in the sibling element after the label.
		raw := s.Next().Text()
		if raw == "" {
			raw = s.Text()
		}
		if m := firstIntRe.FindString(raw); m != "" {
			if age, ok := toInt(m); ok {
				fields["age"] = age
				return false
			}
		}
		return true
	})

	tree.Find("dd").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if !strings.Contains(strings.ToLower(class), "position") {
			return true
		}
		if pos := strings.TrimSpace(s.Text()); pos != "" {
			fields["position"] = pos
			return false
		}
		return true
	})
}

// whoscoredShapes picks the player rating out of the header markup.
func (e *Extractor) whoscoredShapes(tree *goquery.Document, fields map[string]any) {
	tree.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if !strings.Contains(strings.ToLower(class), "rating") {
			return true
		}
		m := floatRe.FindString(s.Text())
		if m == "" {
			return true
		}
		if rating, ok := toFloat(m); ok {
			fields["rating"] = rating
			return false
		}
		return true
	})
}

// personRecord reads embedded ld+json blocks and lifts name and age out
// of any Person record found.
func (e *Extractor) personRecord(tree *goquery.Document, fields map[string]any) {
	tree.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var record map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &record); err != nil {
			return true
		}
		if t, _ := record["@type"].(string); t != "Person" {
			return true
		}
		if name, _ := record["name"].(string); name != "" {
			fields[FieldStructuredName] = name
		}
		switch age := record["age"].(type) {
		case float64:
			fields["structured_age"] = int(age)
		case string:
			if v, ok := toInt(age); ok {
				fields["structured_age"] = v
			}
		}
		return false
	})
}

// metaDescription keeps the page's meta description as a low-priority
// text source for profile display.
func (e *Extractor) metaDescription(tree *goquery.Document, fields map[string]any) {
	if desc, ok := tree.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			fields["meta_description"] = desc
		}
	}
}
