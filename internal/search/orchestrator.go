// Package search drives the fan-out of expanded queries against the
// search provider and, in deep mode, the follow-up page fetches.
package search

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/apes-labs/scout-cli/internal/extract"
	"github.com/apes-labs/scout-cli/internal/model"
	"github.com/apes-labs/scout-cli/pkg/cse"
	"github.com/apes-labs/scout-cli/pkg/webpage"
)

// QuotaSourceLabel marks the synthetic hit inserted when the provider
// reports quota exhaustion for one query.
const QuotaSourceLabel = "quota"

// Options bound the orchestrator's external-call behavior.
type Options struct {
	// Spacing is the minimum interval between provider calls.
	Spacing time.Duration
	// ScrapeDepth caps how many merged hits get a follow-up fetch in
	// deep mode.
	ScrapeDepth int
	// FetchTimeout bounds each follow-up page fetch.
	FetchTimeout time.Duration
	// MaxParallelFetch bounds concurrent follow-up fetches.
	MaxParallelFetch int
}

// Stats summarizes one orchestrated search pass.
type Stats struct {
	QueriesIssued int
	HitsTotal     int
	PagesFetched  int
	FetchFailures int
	QuotaExceeded int
}

// Orchestrator issues the expanded queries one at a time with spacing
// and merges the provider's results into a flat hit list.
type Orchestrator struct {
	provider  cse.Client
	fetcher   webpage.Fetcher
	extractor *extract.Extractor
	limiter   *rate.Limiter
	opts      Options
}

// New builds an Orchestrator over the given collaborators.
func New(provider cse.Client, fetcher webpage.Fetcher, extractor *extract.Extractor, opts Options) *Orchestrator {
	if opts.Spacing <= 0 {
		opts.Spacing = time.Second
	}
	if opts.ScrapeDepth <= 0 {
		opts.ScrapeDepth = 3
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.MaxParallelFetch <= 0 {
		opts.MaxParallelFetch = 3
	}
	return &Orchestrator{
		provider:  provider,
		fetcher:   fetcher,
		extractor: extractor,
		limiter:   rate.NewLimiter(rate.Every(opts.Spacing), 1),
		opts:      opts,
	}
}

// Run searches every query in order and returns the merged hits. A
// quota signal degrades that query to a marked placeholder hit; a
// transient provider failure skips the query. Only context
// cancellation aborts the pass.
func (o *Orchestrator) Run(ctx context.Context, queries []string, maxResults int, deep bool) ([]model.SearchHit, Stats, error) {
	var hits []model.SearchHit
	var stats Stats

	for _, query := range queries {
		if err := o.limiter.Wait(ctx); err != nil {
			return hits, stats, eris.Wrap(err, "search: rate limit wait")
		}
		stats.QueriesIssued++

		resp, err := o.provider.Search(ctx, query, maxResults)
		switch {
		case eris.Is(err, cse.ErrQuotaExceeded):
			stats.QuotaExceeded++
			hits = append(hits, model.SearchHit{
				Title:            "Search quota exceeded",
				Snippet:          "The provider refused this query; results are partial.",
				SourceLabel:      QuotaSourceLabel,
				QuotaPlaceholder: true,
			})
			continue
		case err != nil:
			zap.L().Warn("search: query failed, skipping",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}

		for _, item := range resp.Items {
			hits = append(hits, o.bareHit(item))
		}
	}
	stats.HitsTotal = len(hits)

	if deep {
		o.enrich(ctx, hits, &stats)
	}
	return hits, stats, nil
}

// bareHit converts one provider item into a snippet-only hit: source
// category from the origin URL, fields from snippet patterns and any
// person metadata the provider already structured.
func (o *Orchestrator) bareHit(item cse.Item) model.SearchHit {
	source := extract.DetectSource(item.Link)
	fields := o.extractor.ExtractSnippet(item.Snippet, source)

	if person, ok := item.PageMap["person"]; ok && len(person) > 0 {
		if name := person[0]["name"]; name != "" {
			fields[extract.FieldStructuredName] = name
		}
	}

	return model.SearchHit{
		URL:             item.Link,
		Title:           item.Title,
		Snippet:         item.Snippet,
		SourceLabel:     source,
		ExtractedFields: fields,
	}
}

// enrich fetches a bounded prefix of the hits and replaces their
// snippet-derived fields with full-document extraction. A failed fetch
// degrades that one hit and never aborts the batch.
func (o *Orchestrator) enrich(ctx context.Context, hits []model.SearchHit, stats *Stats) {
	depth := o.opts.ScrapeDepth
	if depth > len(hits) {
		depth = len(hits)
	}

	var fetched, failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.MaxParallelFetch)
	for i := 0; i < depth; i++ {
		hit := &hits[i]
		if hit.QuotaPlaceholder {
			continue
		}
		g.Go(func() error {
			if err := o.fetchInto(gctx, hit); err != nil {
				failures.Add(1)
				hit.FetchError = err.Error()
				zap.L().Debug("search: page fetch degraded",
					zap.String("url", hit.URL),
					zap.Error(err),
				)
				return nil
			}
			fetched.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	stats.PagesFetched = int(fetched.Load())
	stats.FetchFailures = int(failures.Load())
}

// fetchInto retrieves and parses one hit's page, then overrides the
// hit's snippet-derived fields with the full-document extraction.
func (o *Orchestrator) fetchInto(ctx context.Context, hit *model.SearchHit) error {
	fctx, cancel := context.WithTimeout(ctx, o.opts.FetchTimeout)
	defer cancel()

	res, err := o.fetcher.Fetch(fctx, hit.URL)
	if err != nil {
		return err
	}
	if !res.OK() {
		return eris.Errorf("search: fetch status %d", res.StatusCode)
	}

	doc, err := webpage.Parse(res.Body, res.ContentType)
	if err != nil {
		return err
	}

	fields := o.extractor.Extract(doc, hit.SourceLabel)
	for k, v := range fields {
		hit.ExtractedFields[k] = v
	}
	hit.FetchSucceeded = true
	return nil
}
