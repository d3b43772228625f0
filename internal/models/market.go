package models

import "time"

// Quote holds a live price snapshot for one instrument.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

// MarketSnapshot is the latest-result slot of the snapshot fetcher,
// overwritten on each refresh. Failed quotes are dropped; partial results
// are valid.
type MarketSnapshot struct {
	Indices     []Quote   `json:"indices"`
	Stocks      []Quote   `json:"stocks"`
	LastUpdated time.Time `json:"last_updated"`
}
