package market

import (
	"context"
	"fmt"
	"testing"

	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

// fakeSource serves quotes from a map; symbols absent from the map fail.
type fakeSource struct {
	quotes map[string]models.Quote
}

func (f *fakeSource) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}
	return &q, nil
}

func stockQuotes(symbols ...string) map[string]models.Quote {
	quotes := make(map[string]models.Quote, len(symbols))
	for i, s := range symbols {
		quotes[s] = models.Quote{Symbol: s, Price: float64(100 * (i + 1))}
	}
	return quotes
}

func TestRefresh_AllSucceed(t *testing.T) {
	indices := []string{"^NSEI", "^BSESN"}
	watchlist := []string{"RELIANCE.NS", "HDFCBANK.NS", "INFY.NS"}
	source := &fakeSource{quotes: stockQuotes(append(indices, watchlist...)...)}

	f := NewFetcher(source, indices, watchlist, common.NewSilentLogger())
	snap := f.Refresh(context.Background())

	if len(snap.Indices) != 2 {
		t.Errorf("Expected 2 index quotes, got %d", len(snap.Indices))
	}
	if len(snap.Stocks) != 3 {
		t.Errorf("Expected 3 stock quotes, got %d", len(snap.Stocks))
	}
	if snap.LastUpdated.IsZero() {
		t.Error("Expected last_updated to be stamped")
	}
}

func TestRefresh_PartialFailureDropsOnlyFailedSymbol(t *testing.T) {
	watchlist := []string{"RELIANCE.NS", "HDFCBANK.NS", "INFY.NS", "TCS.NS", "ICICIBANK.NS"}
	quotes := stockQuotes(watchlist...)
	delete(quotes, "INFY.NS")
	source := &fakeSource{quotes: quotes}

	f := NewFetcher(source, nil, watchlist, common.NewSilentLogger())
	snap := f.Refresh(context.Background())

	if len(snap.Stocks) != 4 {
		t.Fatalf("Expected 4 surviving quotes, got %d", len(snap.Stocks))
	}
	// Survivors keep request order with the failed symbol removed.
	want := []string{"RELIANCE.NS", "HDFCBANK.NS", "TCS.NS", "ICICIBANK.NS"}
	for i, q := range snap.Stocks {
		if q.Symbol != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], q.Symbol)
		}
	}
}

func TestRefresh_AllFailProducesEmptySnapshot(t *testing.T) {
	f := NewFetcher(&fakeSource{}, []string{"^NSEI"}, []string{"TCS.NS"}, common.NewSilentLogger())
	snap := f.Refresh(context.Background())

	if len(snap.Indices) != 0 || len(snap.Stocks) != 0 {
		t.Errorf("Expected empty snapshot, got %d indices and %d stocks", len(snap.Indices), len(snap.Stocks))
	}
}

func TestLatest_NilBeforeFirstRefresh(t *testing.T) {
	f := NewFetcher(&fakeSource{}, nil, nil, common.NewSilentLogger())
	if f.Latest() != nil {
		t.Error("Expected nil before first refresh")
	}
}

func TestLatest_ReturnsLastRefreshResult(t *testing.T) {
	watchlist := []string{"TCS.NS"}
	source := &fakeSource{quotes: stockQuotes(watchlist...)}
	f := NewFetcher(source, nil, watchlist, common.NewSilentLogger())

	f.Refresh(context.Background())
	snap := f.Latest()
	if snap == nil {
		t.Fatal("Expected a snapshot after refresh")
	}
	if len(snap.Stocks) != 1 || snap.Stocks[0].Symbol != "TCS.NS" {
		t.Errorf("Unexpected latest snapshot: %+v", snap)
	}
}
