package handlers

import (
	"net/http"

	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/market"
)

// MarketHandler serves the market snapshot side panel data.
type MarketHandler struct {
	logger  *common.Logger
	fetcher *market.Fetcher
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(logger *common.Logger, fetcher *market.Fetcher) *MarketHandler {
	return &MarketHandler{logger: logger, fetcher: fetcher}
}

// Snapshot handles GET /api/market/snapshot: refreshes all quotes and
// serves whatever succeeded.
func (h *MarketHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	snap := h.fetcher.Refresh(r.Context())

	WriteJSON(w, http.StatusOK, snap)
}

// Latest handles GET /api/market/latest: serves the last fetched snapshot
// without triggering a refresh. 404 before the first refresh.
func (h *MarketHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	snap := h.fetcher.Latest()
	if snap == nil {
		WriteError(w, http.StatusNotFound, "no snapshot fetched yet")
		return
	}

	WriteJSON(w, http.StatusOK, snap)
}
