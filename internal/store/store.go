// Package store persists scouting runs and caches completed results.
package store

import (
	"context"
	"time"

	"github.com/apes-labs/scout-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Query  string          `json:"query,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the scouting pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, query string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunResult(ctx context.Context, runID string, result *model.ScoutResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Report cache: completed results keyed by the raw query, so
	// repeating a search inside the TTL skips the provider entirely.
	GetCachedResult(ctx context.Context, query string) (*model.ScoutResult, error)
	SetCachedResult(ctx context.Context, query string, result *model.ScoutResult, ttl time.Duration) error
	DeleteExpiredResults(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
