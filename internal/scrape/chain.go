package scrape

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
)

// Chain tries fetchers in priority order, returning the first success.
type Chain struct {
	fetchers []Fetcher
}

// NewChain creates a Chain. Fetchers are tried in order.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{fetchers: fetchers}
}

// Name identifies the chain as a Fetcher.
func (c *Chain) Name() string { return "chain" }

// Fetch tries each fetcher in order for a single URL. All failures are
// upstream-kind so that callers treat an unreachable page as zero content.
func (c *Chain) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	var lastErr error
	for _, f := range c.fetchers {
		page, err := f.Fetch(ctx, targetURL)
		if err == nil && page != nil {
			return page, nil
		}
		if err != nil {
			zap.L().Debug("fetcher failed, trying next",
				zap.String("fetcher", f.Name()),
				zap.String("url", targetURL),
				zap.Error(err),
			)
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, resilience.Upstreamf("scrape", "no fetcher configured for %s", targetURL)
}

// FetchAll fetches multiple URLs in parallel with a concurrency limit.
// Failed URLs are skipped; surviving pages keep the input order.
func FetchAll(ctx context.Context, f Fetcher, urls []string, maxConcurrent int) []Page {
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}

	results := make([]*Page, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, u := range urls {
		g.Go(func() error {
			page, err := f.Fetch(gCtx, u)
			if err != nil {
				zap.L().Debug("fetch failed for url", zap.String("url", u), zap.Error(err))
				return nil
			}
			results[i] = page
			return nil
		})
	}
	_ = g.Wait()

	var pages []Page
	for _, p := range results {
		if p != nil {
			pages = append(pages, *p)
		}
	}
	return pages
}
