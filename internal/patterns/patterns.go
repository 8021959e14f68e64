// Package patterns holds the declarative extraction rule table mapping
// source categories to per-field ordered pattern rules.
package patterns

import (
	_ "embed"
	"regexp"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var rawTable []byte

// GenericCategory is the fallback category used when a document's origin
// matches no known source.
const GenericCategory = "generic"

// Rule is one compiled extraction rule: a pattern plus the capture group
// that holds the value.
type Rule struct {
	Re    *regexp.Regexp
	Group int
}

// fieldRules keeps a field's rules together with declaration order.
type fieldRules struct {
	field string
	rules []Rule
}

// Library is the immutable pattern table. Categories and fields preserve
// their declaration order so rule precedence is stable.
type Library struct {
	categories map[string][]fieldRules
}

type ruleSpec struct {
	Pattern string `yaml:"pattern"`
	Group   int    `yaml:"group"`
}

type fieldSpec struct {
	Field string     `yaml:"field"`
	Rules []ruleSpec `yaml:"rules"`
}

type categorySpec struct {
	Name   string      `yaml:"name"`
	Fields []fieldSpec `yaml:"fields"`
}

type tableSpec struct {
	Categories []categorySpec `yaml:"categories"`
}

// Load parses the embedded rule table and compiles every pattern.
// Patterns are matched case-insensitively in multi-line mode, the same
// flags the rules were written against.
func Load() (*Library, error) {
	var spec tableSpec
	if err := yaml.Unmarshal(rawTable, &spec); err != nil {
		return nil, eris.Wrap(err, "patterns: parse table")
	}

	lib := &Library{categories: make(map[string][]fieldRules, len(spec.Categories))}
	for _, cat := range spec.Categories {
		var fields []fieldRules
		for _, fs := range cat.Fields {
			fr := fieldRules{field: fs.Field}
			for _, rs := range fs.Rules {
				re, err := regexp.Compile("(?im)" + rs.Pattern)
				if err != nil {
					return nil, eris.Wrapf(err, "patterns: compile %s/%s", cat.Name, fs.Field)
				}
				group := rs.Group
				if group == 0 {
					group = 1
				}
				fr.rules = append(fr.rules, Rule{Re: re, Group: group})
			}
			fields = append(fields, fr)
		}
		lib.categories[cat.Name] = fields
	}

	if _, ok := lib.categories[GenericCategory]; !ok {
		return nil, eris.New("patterns: table missing generic category")
	}
	return lib, nil
}

// Fields returns the ordered field names for a category, falling back to
// the generic category when the requested one is unknown.
func (l *Library) Fields(category string) []string {
	frs, ok := l.categories[category]
	if !ok {
		frs = l.categories[GenericCategory]
	}
	names := make([]string, len(frs))
	for i, fr := range frs {
		names[i] = fr.field
	}
	return names
}

// Rules returns the ordered rules for a category/field pair. Unknown
// categories fall back to generic; unknown fields return nil.
func (l *Library) Rules(category, field string) []Rule {
	frs, ok := l.categories[category]
	if !ok {
		frs = l.categories[GenericCategory]
	}
	for _, fr := range frs {
		if fr.field == field {
			return fr.rules
		}
	}
	return nil
}

// Categories returns the known category names, generic included.
func (l *Library) Categories() []string {
	names := make([]string, 0, len(l.categories))
	for name := range l.categories {
		names = append(names, name)
	}
	return names
}

// numericFields are coerced to integers during extraction; coercion
// failures drop the field.
var numericFields = map[string]bool{
	"age":         true,
	"goals":       true,
	"assists":     true,
	"appearances": true,
}

// IsNumeric reports whether a field holds an integer statistic.
func IsNumeric(field string) bool {
	return numericFields[field]
}
