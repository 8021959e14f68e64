package model

// FieldValue is one consolidated attribute of a candidate profile.
type FieldValue struct {
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// CandidateProfile is one hypothesized player identity consolidated
// from a cluster of search hits. It is immutable after the builder
// pass that creates it.
type CandidateProfile struct {
	IdentityKey string                `json:"identity_key"`
	DisplayName string                `json:"display_name"`
	Fields      map[string]FieldValue `json:"fields"`
	Confidence  float64               `json:"aggregate_confidence"`
	Sources     []string              `json:"sources"`
	HitCount    int                   `json:"hit_count"`
}

// Int returns the named field coerced to int, or 0 when absent or
// non-numeric.
func (p CandidateProfile) Int(field string) int {
	fv, ok := p.Fields[field]
	if !ok {
		return 0
	}
	switch n := fv.Value.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Str returns the named field as a string, or "" when absent.
func (p CandidateProfile) Str(field string) string {
	fv, ok := p.Fields[field]
	if !ok {
		return ""
	}
	if s, ok := fv.Value.(string); ok {
		return s
	}
	return ""
}
