package model

import "time"

// RunStatus represents the current state of a scouting run.
type RunStatus string

const (
	RunStatusQueued        RunStatus = "queued"
	RunStatusAnalyzing     RunStatus = "analyzing"
	RunStatusSearching     RunStatus = "searching"
	RunStatusConsolidating RunStatus = "consolidating"
	RunStatusComplete      RunStatus = "complete"
	RunStatusFailed        RunStatus = "failed"
)

// StageStatus represents the state of one pipeline stage.
type StageStatus string

const (
	StageStatusComplete StageStatus = "complete"
	StageStatusFailed   StageStatus = "failed"
	StageStatusSkipped  StageStatus = "skipped"
)

// StageResult records the outcome of one pipeline stage.
type StageResult struct {
	Name     string         `json:"name"`
	Status   StageStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Run represents a single persisted scouting run.
type Run struct {
	ID        string       `json:"id"`
	Query     string       `json:"query"`
	Status    RunStatus    `json:"status"`
	Result    *ScoutResult `json:"result,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ReportMeta describes the run that produced a report payload.
type ReportMeta struct {
	RunID       string       `json:"run_id"`
	Query       string       `json:"query"`
	Indicators  IndicatorSet `json:"indicators"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// SearchSummary aggregates provider and fetch statistics for a run.
type SearchSummary struct {
	QueriesIssued  int            `json:"queries_issued"`
	HitsTotal      int            `json:"hits_total"`
	HitsAfterDedup int            `json:"hits_after_dedup"`
	PagesFetched   int            `json:"pages_fetched"`
	FetchFailures  int            `json:"fetch_failures"`
	QuotaExceeded  int            `json:"quota_exceeded"`
	SuccessRate    float64        `json:"success_rate"`
	SourceCounts   map[string]int `json:"source_counts,omitempty"`
	DataCoverage   string         `json:"data_coverage"`
}

// ScoutResult is the final report payload handed to formatting and UI
// collaborators.
type ScoutResult struct {
	Metadata        ReportMeta         `json:"metadata"`
	PlayerProfiles  []CandidateProfile `json:"player_profiles"`
	Recommendations []Recommendation   `json:"recommendations"`
	Summary         SearchSummary      `json:"search_summary"`
	Stages          []StageResult      `json:"stages"`
	Report          string             `json:"report,omitempty"`
}

// Representative returns the top-confidence profile and its
// recommendation, or nil when the run found no profiles.
func (r *ScoutResult) Representative() (*CandidateProfile, *Recommendation) {
	if len(r.PlayerProfiles) == 0 {
		return nil, nil
	}
	p := &r.PlayerProfiles[0]
	for i := range r.Recommendations {
		if r.Recommendations[i].IdentityKey == p.IdentityKey {
			return p, &r.Recommendations[i]
		}
	}
	return p, nil
}
