// Package profile groups deduplicated search hits into candidate
// player identities and consolidates their extracted fields.
package profile

import (
	"fmt"
	"sort"

	"github.com/apes-labs/scout-cli/internal/extract"
	"github.com/apes-labs/scout-cli/internal/model"
	"github.com/apes-labs/scout-cli/internal/patterns"
)

// MaxProfiles caps the ranked profile list handed to the
// recommendation stage.
const MaxProfiles = 5

const (
	// Confidence increments per contributing hit. A fetched page is
	// stronger corroboration than a bare snippet.
	fetchedIncrement = 20
	snippetIncrement = 5
	confidenceCap    = 100

	// Per-field confidence grows with repeat observations but never
	// reaches certainty.
	fieldIncrement = 25
	fieldCap       = 95

	// compositeQueryLen bounds the query fragment used in fallback
	// grouping keys.
	compositeQueryLen = 20
)

type observation struct {
	value  any
	source string
}

type group struct {
	key         string
	displayName string
	confidence  float64
	hitCount    int
	sources     []string
	sourceSeen  map[string]bool
	fieldOrder  []string
	fields      map[string][]observation
}

// Build groups hits into candidate identities and merges each group
// into one profile. Quota placeholder hits are skipped. The result is
// sorted by aggregate confidence descending, ties kept in group
// formation order, and capped at MaxProfiles.
func Build(hits []model.SearchHit, query string) []model.CandidateProfile {
	var order []string
	groups := make(map[string]*group)

	for _, hit := range hits {
		if hit.QuotaPlaceholder {
			continue
		}

		name, rawKey := groupingKey(hit, query)
		key := foldKey(rawKey)
		g, ok := groups[key]
		if !ok {
			g = &group{
				key:         key,
				displayName: name,
				sourceSeen:  make(map[string]bool),
				fields:      make(map[string][]observation),
			}
			if g.displayName == "" {
				g.displayName = "Unknown player"
			}
			groups[key] = g
			order = append(order, key)
		}

		g.absorb(hit)
	}

	profiles := make([]model.CandidateProfile, 0, len(order))
	for _, key := range order {
		profiles = append(profiles, groups[key].consolidate())
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Confidence > profiles[j].Confidence
	})
	if len(profiles) > MaxProfiles {
		profiles = profiles[:MaxProfiles]
	}
	return profiles
}

// groupingKey picks the identity key for one hit: structured name
// first, then the first harvested candidate name, then an
// age+position+query composite so every hit lands in some group.
// Returns the display name (empty for composite keys) and the raw key.
func groupingKey(hit model.SearchHit, query string) (name, rawKey string) {
	if n, ok := hit.ExtractedFields[extract.FieldStructuredName].(string); ok && n != "" {
		return n, n
	}
	if names, ok := hit.ExtractedFields[extract.FieldCandidateNames].([]string); ok && len(names) > 0 {
		return names[0], names[0]
	}

	fragment := query
	if len(fragment) > compositeQueryLen {
		fragment = fragment[:compositeQueryLen]
	}
	return "", fmt.Sprintf("age:%v|pos:%v|%s",
		hit.ExtractedFields["age"], hit.ExtractedFields["position"], fragment)
}

// absorb folds one hit's evidence into the group.
func (g *group) absorb(hit model.SearchHit) {
	g.hitCount++

	increment := float64(snippetIncrement)
	if hit.FetchSucceeded {
		increment = fetchedIncrement
	}
	g.confidence += increment
	if g.confidence > confidenceCap {
		g.confidence = confidenceCap
	}

	if hit.SourceLabel != "" && !g.sourceSeen[hit.SourceLabel] {
		g.sourceSeen[hit.SourceLabel] = true
		g.sources = append(g.sources, hit.SourceLabel)
	}

	for _, field := range orderedFields(hit.ExtractedFields) {
		value := hit.ExtractedFields[field]
		switch field {
		case extract.FieldStructuredName, extract.FieldCandidateNames:
			continue
		case "structured_age":
			field = "age"
		}
		if _, ok := g.fields[field]; !ok {
			g.fieldOrder = append(g.fieldOrder, field)
		}
		g.fields[field] = append(g.fields[field], observation{value: value, source: hit.SourceLabel})
	}
}

// orderedFields returns the map's keys sorted, so repeated runs over
// identical hits produce identical field orders.
func orderedFields(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// consolidate merges a group's observations into the final profile.
// Numeric stats keep the maximum observed value; text fields keep the
// most repeated value with ties going to the first seen.
func (g *group) consolidate() model.CandidateProfile {
	fields := make(map[string]model.FieldValue, len(g.fieldOrder))
	for _, field := range g.fieldOrder {
		obs := g.fields[field]

		var winner observation
		var ok bool
		switch {
		case patterns.IsNumeric(field):
			winner, ok = maxInt(obs)
		case field == "rating":
			winner, ok = maxFloat(obs)
		default:
			winner, ok = mode(obs)
		}
		if !ok {
			continue
		}

		confidence := float64(len(obs)) * fieldIncrement
		if confidence > fieldCap {
			confidence = fieldCap
		}
		fields[field] = model.FieldValue{
			Value:      winner.value,
			Confidence: confidence,
			Source:     winner.source,
		}
	}

	return model.CandidateProfile{
		IdentityKey: g.key,
		DisplayName: g.displayName,
		Fields:      fields,
		Confidence:  g.confidence,
		Sources:     g.sources,
		HitCount:    g.hitCount,
	}
}

// maxInt keeps the largest integer observation; non-integers are
// ignored.
func maxInt(obs []observation) (observation, bool) {
	var best observation
	found := false
	for _, o := range obs {
		v, ok := asInt(o.value)
		if !ok {
			continue
		}
		if !found {
			best, found = observation{value: v, source: o.source}, true
			continue
		}
		if v > best.value.(int) {
			best = observation{value: v, source: o.source}
		}
	}
	return best, found
}

func maxFloat(obs []observation) (observation, bool) {
	var best observation
	found := false
	for _, o := range obs {
		v, ok := asFloat(o.value)
		if !ok {
			continue
		}
		if !found {
			best, found = observation{value: v, source: o.source}, true
			continue
		}
		if v > best.value.(float64) {
			best = observation{value: v, source: o.source}
		}
	}
	return best, found
}

// mode keeps the most frequent value; ties resolve to the value seen
// first.
func mode(obs []observation) (observation, bool) {
	if len(obs) == 0 {
		return observation{}, false
	}

	counts := make(map[string]int, len(obs))
	firstIdx := make(map[string]int, len(obs))
	for i, o := range obs {
		key := fmt.Sprint(o.value)
		counts[key]++
		if _, seen := firstIdx[key]; !seen {
			firstIdx[key] = i
		}
	}

	bestIdx := 0
	bestCount := 0
	for key, count := range counts {
		idx := firstIdx[key]
		if count > bestCount || (count == bestCount && idx < bestIdx) {
			bestCount = count
			bestIdx = idx
		}
	}
	return obs[bestIdx], true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
