package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	for _, cat := range []string{"transfermarkt", "whoscored", "fotmob", "espn", "generic"} {
		assert.NotEmpty(t, lib.Fields(cat), "category %s", cat)
	}
}

func TestRulesOrdered(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	rules := lib.Rules("transfermarkt", "age")
	require.Len(t, rules, 2)

	// First rule is the labeled form; it must match before the looser one.
	m := rules[0].Re.FindStringSubmatch("Age: 19")
	require.NotNil(t, m)
	assert.Equal(t, "19", m[rules[0].Group])

	m = rules[1].Re.FindStringSubmatch("19 years old")
	require.NotNil(t, m)
	assert.Equal(t, "19", m[rules[1].Group])
}

func TestRulesCaseInsensitive(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	rules := lib.Rules("generic", "goals")
	require.NotEmpty(t, rules)
	assert.NotNil(t, rules[0].Re.FindStringSubmatch("15 GOALS"))
}

func TestGenericAgeAlternatives(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	rules := lib.Rules("generic", "age")
	require.NotEmpty(t, rules)

	// The loose rule accepts all three suffix forms.
	for _, text := range []string{"19 years old", "19 age", "19 anni"} {
		m := rules[0].Re.FindStringSubmatch(text)
		require.NotNil(t, m, "text %q", text)
		assert.Equal(t, "19", m[rules[0].Group], "text %q", text)
	}
}

func TestUnknownCategoryFallsBackToGeneric(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	assert.Equal(t, lib.Fields("generic"), lib.Fields("nosuchsite"))
	assert.NotNil(t, lib.Rules("nosuchsite", "age"))
}

func TestUnknownFieldReturnsNil(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	assert.Nil(t, lib.Rules("generic", "shoe_size"))
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		field string
		want  bool
	}{
		{"age", true},
		{"goals", true},
		{"assists", true},
		{"appearances", true},
		{"position", false},
		{"market_value", false},
		{"club", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsNumeric(tc.field), "IsNumeric(%q)", tc.field)
	}
}
