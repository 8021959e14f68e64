// Package webpage fetches documents over HTTP and parses them into a
// plain-text view plus an element tree.
package webpage

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxBodyBytes caps how much of a document is read. Player pages are
// small; anything beyond this is noise.
const maxBodyBytes = 4 << 20

// FetchResult holds the outcome of one page fetch. A non-2xx status is
// returned here as data, not as an error: it is a soft failure.
type FetchResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// OK reports whether the fetch returned a success status.
func (r *FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves raw documents.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*FetchResult, error)
}

// Option configures the fetcher.
type Option func(*httpFetcher)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *httpFetcher) {
		f.http = hc
	}
}

// WithUserAgent overrides the request User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *httpFetcher) {
		f.userAgent = ua
	}
}

type httpFetcher struct {
	http      *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher whose requests time out after the given
// duration. The client is constructed once and shared across calls.
func NewFetcher(timeout time.Duration, opts ...Option) Fetcher {
	f := &httpFetcher{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *httpFetcher) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "webpage: create request")
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "webpage: fetch %s", targetURL)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "webpage: read body")
	}

	return &FetchResult{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
