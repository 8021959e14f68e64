package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apes-labs/scout-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "scout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteRunLifecycle(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "Lionel Messi")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusSearching))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusSearching, got.Status)
	assert.Nil(t, got.Result)

	result := &model.ScoutResult{
		Metadata: model.ReportMeta{RunID: run.ID, Query: "Lionel Messi"},
		PlayerProfiles: []model.CandidateProfile{{
			IdentityKey: "lionel-messi",
			DisplayName: "Lionel Messi",
			Confidence:  60,
		}},
		Summary: model.SearchSummary{DataCoverage: "ok"},
	}
	require.NoError(t, s.UpdateRunResult(ctx, run.ID, result))

	got, err = s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	require.Len(t, got.Result.PlayerProfiles, 1)
	assert.Equal(t, "Lionel Messi", got.Result.PlayerProfiles[0].DisplayName)
}

func TestSQLiteUpdateMissingRun(t *testing.T) {
	s := newTestSQLite(t)

	err := s.UpdateRunStatus(context.Background(), "no-such-run", model.RunStatusFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteGetMissingRun(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
}

func TestSQLiteListRunsFilters(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a, err := s.CreateRun(ctx, "striker u19")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "Lionel Messi")
	require.NoError(t, err)
	require.NoError(t, s.UpdateRunStatus(ctx, a.ID, model.RunStatusFailed))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	failed, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, a.ID, failed[0].ID)

	byQuery, err := s.ListRuns(ctx, RunFilter{Query: "Lionel Messi"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Lionel Messi", byQuery[0].Query)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteReportCache(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	miss, err := s.GetCachedResult(ctx, "Lionel Messi")
	require.NoError(t, err)
	assert.Nil(t, miss)

	result := &model.ScoutResult{
		Metadata: model.ReportMeta{Query: "Lionel Messi"},
		Summary:  model.SearchSummary{HitsAfterDedup: 3},
	}
	require.NoError(t, s.SetCachedResult(ctx, "Lionel Messi", result, time.Hour))

	cached, err := s.GetCachedResult(ctx, "Lionel Messi")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 3, cached.Summary.HitsAfterDedup)
}

func TestSQLiteReportCacheExpiry(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	result := &model.ScoutResult{Metadata: model.ReportMeta{Query: "q"}}
	require.NoError(t, s.SetCachedResult(ctx, "q", result, -time.Hour))

	cached, err := s.GetCachedResult(ctx, "q")
	require.NoError(t, err)
	assert.Nil(t, cached)

	n, err := s.DeleteExpiredResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
