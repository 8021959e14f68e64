package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/apes-labs/scout-cli/internal/extract"
	"github.com/apes-labs/scout-cli/internal/patterns"
	"github.com/apes-labs/scout-cli/internal/pipeline"
	"github.com/apes-labs/scout-cli/internal/search"
	"github.com/apes-labs/scout-cli/internal/store"
	"github.com/apes-labs/scout-cli/pkg/cse"
	"github.com/apes-labs/scout-cli/pkg/webpage"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "scout.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// pipelineEnv bundles the pipeline with the resources it owns.
type pipelineEnv struct {
	Pipeline *pipeline.Pipeline
	Store    store.Store
}

func (e *pipelineEnv) Close() {
	_ = e.Store.Close()
}

func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if cfg.CSE.Key == "" || cfg.CSE.EngineID == "" {
		return nil, eris.New("search credentials are required (SCOUT_CSE_KEY, SCOUT_CSE_ENGINE_ID)")
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	lib, err := patterns.Load()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	var cseOpts []cse.Option
	if cfg.CSE.BaseURL != "" {
		cseOpts = append(cseOpts, cse.WithBaseURL(cfg.CSE.BaseURL))
	}
	provider := cse.NewClient(cfg.CSE.Key, cfg.CSE.EngineID, cseOpts...)

	fetchTimeout := time.Duration(cfg.Search.FetchTimeoutSecs) * time.Second
	fetcher := webpage.NewFetcher(fetchTimeout)

	orchestrator := search.New(provider, fetcher, extract.New(lib), search.Options{
		Spacing:          time.Duration(cfg.Search.SpacingMS) * time.Millisecond,
		ScrapeDepth:      cfg.Search.ScrapeDepth,
		FetchTimeout:     fetchTimeout,
		MaxParallelFetch: cfg.Search.MaxParallelFetch,
	})

	return &pipelineEnv{
		Pipeline: pipeline.New(cfg, st, orchestrator),
		Store:    st,
	}, nil
}
