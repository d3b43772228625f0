package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bamcapital/bam-portal/internal/models"
)

// quoteResponse mirrors the provider's quote payload. Only the regular
// market fields are read; the rest of the document is ignored.
type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                 string  `json:"symbol"`
			ShortName              string  `json:"shortName"`
			RegularMarketPrice     float64 `json:"regularMarketPrice"`
			RegularMarketChange    float64 `json:"regularMarketChange"`
			RegularMarketChangePct float64 `json:"regularMarketChangePercent"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// MarketClient fetches live quotes from the market-quote provider.
// Instrument symbols are provider-qualified (".NS" suffix for NSE
// equities, "^" prefix for indices) and passed through unchanged.
type MarketClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMarketClient creates a new market-quote client.
func NewMarketClient(baseURL string, timeout time.Duration) *MarketClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MarketClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetQuote fetches the current quote for one symbol. Errors propagate;
// the snapshot fetcher tolerates individual failures.
func (c *MarketClient) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	reqURL := c.baseURL + "?symbols=" + url.QueryEscape(symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach quote provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote provider returned %d for %s", resp.StatusCode, symbol)
	}

	var qr quoteResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("failed to parse quote for %s: %w", symbol, err)
	}
	if qr.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote provider error for %s: %s", symbol, qr.QuoteResponse.Error.Description)
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}

	r := qr.QuoteResponse.Result[0]
	return &models.Quote{
		Symbol:    r.Symbol,
		Name:      r.ShortName,
		Price:     r.RegularMarketPrice,
		Change:    r.RegularMarketChange,
		ChangePct: r.RegularMarketChangePct,
	}, nil
}
