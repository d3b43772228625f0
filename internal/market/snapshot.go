// Package market implements the market snapshot fetcher: a parallel
// fan-out over index and watchlist quotes that tolerates individual
// failures and keeps only the latest result.
package market

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

// QuoteSource fetches one quote per symbol.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
}

// Fetcher refreshes quotes for a fixed set of index symbols and a
// configurable watchlist. Each refresh overwrites the latest-result slot;
// there is no retry, caching, or staleness tracking.
type Fetcher struct {
	source    QuoteSource
	indices   []string
	watchlist []string
	logger    *common.Logger

	mu     sync.RWMutex
	latest *models.MarketSnapshot
}

// NewFetcher creates a fetcher over the given symbols.
func NewFetcher(source QuoteSource, indices, watchlist []string, logger *common.Logger) *Fetcher {
	return &Fetcher{
		source:    source,
		indices:   indices,
		watchlist: watchlist,
		logger:    logger,
	}
}

// Refresh fetches all quotes concurrently. An individual quote failure is
// logged and its slot dropped; the surviving quotes keep request order.
// The two index quotes and the watchlist batch share the same tolerance.
func (f *Fetcher) Refresh(ctx context.Context) *models.MarketSnapshot {
	indices := f.fetchBatch(ctx, f.indices)
	stocks := f.fetchBatch(ctx, f.watchlist)

	snap := &models.MarketSnapshot{
		Indices:     indices,
		Stocks:      stocks,
		LastUpdated: time.Now().UTC(),
	}

	f.mu.Lock()
	f.latest = snap
	f.mu.Unlock()

	return snap
}

// fetchBatch fans out one goroutine per symbol and filters out failures
// while preserving request order.
func (f *Fetcher) fetchBatch(ctx context.Context, symbols []string) []models.Quote {
	results := make([]*models.Quote, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		g.Go(func() error {
			q, err := f.source.GetQuote(gctx, symbol)
			if err != nil {
				f.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("quote fetch failed")
				return nil
			}
			results[i] = q
			return nil
		})
	}
	g.Wait()

	quotes := make([]models.Quote, 0, len(symbols))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

// Latest returns a copy of the most recent snapshot, or nil before the
// first refresh.
func (f *Fetcher) Latest() *models.MarketSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.latest == nil {
		return nil
	}
	snap := *f.latest
	return &snap
}
