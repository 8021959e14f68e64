// Package pipeline wires the scouting stages into one sequential run:
// analyze, expand, search, dedupe, consolidate, recommend, report.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/apes-labs/scout-cli/internal/analyze"
	"github.com/apes-labs/scout-cli/internal/config"
	"github.com/apes-labs/scout-cli/internal/dedupe"
	"github.com/apes-labs/scout-cli/internal/expand"
	"github.com/apes-labs/scout-cli/internal/model"
	"github.com/apes-labs/scout-cli/internal/profile"
	"github.com/apes-labs/scout-cli/internal/recommend"
	"github.com/apes-labs/scout-cli/internal/report"
	"github.com/apes-labs/scout-cli/internal/search"
	"github.com/apes-labs/scout-cli/internal/store"
)

// Options are the per-run knobs callers may override.
type Options struct {
	MaxResults int
	Deep       bool
	// Mode forces a site category for query expansion; empty means auto.
	Mode string
	// NoCache skips the report cache lookup for this run.
	NoCache bool
}

// Pipeline runs scouting requests end to end. All request state is
// local to Run; one Pipeline may serve concurrent requests.
type Pipeline struct {
	cfg          *config.Config
	store        store.Store
	orchestrator *search.Orchestrator
}

// New creates a Pipeline with its collaborators.
func New(cfg *config.Config, st store.Store, orchestrator *search.Orchestrator) *Pipeline {
	return &Pipeline{
		cfg:          cfg,
		store:        st,
		orchestrator: orchestrator,
	}
}

// Run executes the full scouting pipeline for one query. Degraded
// stages produce partial output; only context cancellation or a failure
// to even start the run is returned as an error.
func (p *Pipeline) Run(ctx context.Context, query string, opts Options) (*model.ScoutResult, error) {
	log := zap.L().With(zap.String("query", query))
	log.Info("pipeline: starting scout run")

	if !opts.NoCache {
		if cached, err := p.store.GetCachedResult(ctx, query); err != nil {
			log.Warn("pipeline: cache lookup failed", zap.Error(err))
		} else if cached != nil {
			log.Info("pipeline: serving cached result", zap.String("run_id", cached.Metadata.RunID))
			return cached, nil
		}
	}

	run, err := p.store.CreateRun(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}

	result := &model.ScoutResult{
		Metadata: model.ReportMeta{
			RunID:       run.ID,
			Query:       query,
			GeneratedAt: time.Now().UTC(),
		},
	}

	setStatus := func(status model.RunStatus) {
		if statusErr := p.store.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("pipeline: failed to update status", zap.Error(statusErr))
		}
	}

	trackStage := func(name string, fn func() (map[string]any, error)) {
		start := time.Now()
		metadata, fnErr := fn()
		duration := time.Since(start).Milliseconds()

		stage := model.StageResult{
			Name:     name,
			Status:   model.StageStatusComplete,
			Duration: duration,
			Metadata: metadata,
		}
		if fnErr != nil {
			stage.Status = model.StageStatusFailed
			stage.Error = fnErr.Error()
			log.Error("pipeline: stage failed",
				zap.String("stage", name),
				zap.Int64("duration_ms", duration),
				zap.Error(fnErr),
			)
		} else {
			log.Info("pipeline: stage complete",
				zap.String("stage", name),
				zap.Int64("duration_ms", duration),
			)
		}
		result.Stages = append(result.Stages, stage)
	}

	// ===== Stage 1: Query analysis =====
	setStatus(model.RunStatusAnalyzing)

	var indicators model.IndicatorSet
	trackStage("1_analyze", func() (map[string]any, error) {
		indicators = analyze.Analyze(query)
		result.Metadata.Indicators = indicators
		return map[string]any{
			"difficulty":       string(indicators.Difficulty),
			"is_specific_name": indicators.IsSpecificName,
		}, nil
	})

	// ===== Stage 2: Query expansion =====
	var queries []string
	trackStage("2_expand", func() (map[string]any, error) {
		queries = expand.Expand(query, indicators, opts.Mode)
		return map[string]any{"queries": len(queries)}, nil
	})

	// ===== Stage 3: Search fan-out =====
	setStatus(model.RunStatusSearching)

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = p.cfg.Search.MaxResults
	}

	var hits []model.SearchHit
	var stats search.Stats
	var searchErr error
	trackStage("3_search", func() (map[string]any, error) {
		hits, stats, searchErr = p.orchestrator.Run(ctx, queries, maxResults, opts.Deep)
		return map[string]any{
			"hits":           stats.HitsTotal,
			"quota_exceeded": stats.QuotaExceeded,
			"pages_fetched":  stats.PagesFetched,
		}, searchErr
	})
	if searchErr != nil {
		setStatus(model.RunStatusFailed)
		return result, eris.Wrap(searchErr, "pipeline: search")
	}

	// ===== Stage 4: Dedup =====
	trackStage("4_dedupe", func() (map[string]any, error) {
		before := len(hits)
		hits = dedupe.Hits(hits)
		return map[string]any{"before": before, "after": len(hits)}, nil
	})

	// ===== Stage 5: Profile consolidation =====
	setStatus(model.RunStatusConsolidating)

	trackStage("5_profiles", func() (map[string]any, error) {
		result.PlayerProfiles = profile.Build(hits, query)
		return map[string]any{"profiles": len(result.PlayerProfiles)}, nil
	})

	// ===== Stage 6: Recommendations =====
	trackStage("6_recommend", func() (map[string]any, error) {
		result.Recommendations = recommend.ScoreAll(result.PlayerProfiles)
		return map[string]any{"recommendations": len(result.Recommendations)}, nil
	})

	// ===== Stage 7: Report payload =====
	trackStage("7_report", func() (map[string]any, error) {
		result.Summary = summarize(hits, stats, result.PlayerProfiles)
		result.Report = report.Markdown(result)
		return nil, nil
	})

	if saveErr := p.store.UpdateRunResult(ctx, run.ID, result); saveErr != nil {
		log.Warn("pipeline: failed to save run result", zap.Error(saveErr))
	}
	if !opts.NoCache {
		ttl := time.Duration(p.cfg.Search.CacheTTLHours) * time.Hour
		if cacheErr := p.store.SetCachedResult(ctx, query, result, ttl); cacheErr != nil {
			log.Warn("pipeline: failed to cache result", zap.Error(cacheErr))
		}
	}

	log.Info("pipeline: scout run complete",
		zap.String("run_id", run.ID),
		zap.Int("profiles", len(result.PlayerProfiles)),
		zap.Int("hits", len(hits)),
	)

	return result, nil
}

// summarize folds the orchestrator stats and the consolidated profiles
// into the run's search summary.
func summarize(hits []model.SearchHit, stats search.Stats, profiles []model.CandidateProfile) model.SearchSummary {
	summary := model.SearchSummary{
		QueriesIssued:  stats.QueriesIssued,
		HitsTotal:      stats.HitsTotal,
		HitsAfterDedup: len(hits),
		PagesFetched:   stats.PagesFetched,
		FetchFailures:  stats.FetchFailures,
		QuotaExceeded:  stats.QuotaExceeded,
		SourceCounts:   make(map[string]int),
	}

	real := 0
	for _, hit := range hits {
		if hit.QuotaPlaceholder {
			continue
		}
		real++
		summary.SourceCounts[hit.SourceLabel]++
	}
	if stats.QueriesIssued > 0 {
		summary.SuccessRate = float64(stats.QueriesIssued-stats.QuotaExceeded) / float64(stats.QueriesIssued)
	}

	if len(profiles) == 0 {
		summary.DataCoverage = "No profiles found"
	} else {
		summary.DataCoverage = fmt.Sprintf("%d candidate profile(s) from %d corroborated hits across %d source(s)",
			len(profiles), real, len(summary.SourceCounts))
	}
	return summary
}
