package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func quoteBody(symbol, name string, price, change, pct float64) string {
	return fmt.Sprintf(`{"quoteResponse":{"result":[{"symbol":%q,"shortName":%q,"regularMarketPrice":%f,"regularMarketChange":%f,"regularMarketChangePercent":%f}],"error":null}}`,
		symbol, name, price, change, pct)
}

func TestGetQuote_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "RELIANCE.NS" {
			t.Errorf("Expected symbols=RELIANCE.NS, got %s", got)
		}
		fmt.Fprint(w, quoteBody("RELIANCE.NS", "Reliance Industries", 2456.75, 12.4, 0.51))
	}))
	defer mockServer.Close()

	c := NewMarketClient(mockServer.URL, 5*time.Second)
	q, err := c.GetQuote(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if q.Symbol != "RELIANCE.NS" {
		t.Errorf("Expected symbol RELIANCE.NS, got %s", q.Symbol)
	}
	if q.Price != 2456.75 {
		t.Errorf("Expected price 2456.75, got %f", q.Price)
	}
	if q.ChangePct != 0.51 {
		t.Errorf("Expected change pct 0.51, got %f", q.ChangePct)
	}
}

func TestGetQuote_IndexSymbolEscaped(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The caret must arrive decoded as the original symbol.
		if got := r.URL.Query().Get("symbols"); got != "^NSEI" {
			t.Errorf("Expected symbols=^NSEI, got %s", got)
		}
		fmt.Fprint(w, quoteBody("^NSEI", "NIFTY 50", 22150.30, -85.2, -0.38))
	}))
	defer mockServer.Close()

	c := NewMarketClient(mockServer.URL, time.Second)
	q, err := c.GetQuote(context.Background(), "^NSEI")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if q.Change != -85.2 {
		t.Errorf("Expected change -85.2, got %f", q.Change)
	}
}

func TestGetQuote_ProviderError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[],"error":{"code":"Bad Request","description":"invalid symbol"}}}`)
	}))
	defer mockServer.Close()

	c := NewMarketClient(mockServer.URL, time.Second)
	_, err := c.GetQuote(context.Background(), "BOGUS")
	if err == nil {
		t.Fatal("Expected provider error to propagate")
	}
}

func TestGetQuote_EmptyResult(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[],"error":null}}`)
	}))
	defer mockServer.Close()

	c := NewMarketClient(mockServer.URL, time.Second)
	_, err := c.GetQuote(context.Background(), "UNKNOWN.NS")
	if err == nil {
		t.Fatal("Expected error for empty result set")
	}
}

func TestGetQuote_NonOKStatus(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer mockServer.Close()

	c := NewMarketClient(mockServer.URL, time.Second)
	_, err := c.GetQuote(context.Background(), "TCS.NS")
	if err == nil {
		t.Fatal("Expected error for 429 response")
	}
}
