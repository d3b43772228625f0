package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bamcapital/bam-portal/internal/cache"
	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

// QueryAPI is the slice of the advisory client the query handler uses.
type QueryAPI interface {
	SubmitQuery(ctx context.Context, text string, userID int) *models.QueryRecord
	GetQueryHistory(ctx context.Context, userID int) []models.QueryRecord
}

// QueryHandler serves natural-language query submission and history.
type QueryHandler struct {
	logger *common.Logger
	api    QueryAPI
	cache  *cache.ResponseCache
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(logger *common.Logger, api QueryAPI, respCache *cache.ResponseCache) *QueryHandler {
	return &QueryHandler{logger: logger, api: api, cache: respCache}
}

// Submit handles POST /api/query {query, user_id}. A backend failure
// still returns 200 with the canned apology response.
func (h *QueryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		Query  string `json:"query"`
		UserID int    `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, http.StatusBadRequest, "query is required")
		return
	}

	rec := h.api.SubmitQuery(r.Context(), req.Query, req.UserID)

	if h.cache != nil {
		h.cache.InvalidateResource("/query")
	}

	WriteJSON(w, http.StatusOK, rec)
}

// History handles GET /api/queries?user_id=N.
func (h *QueryHandler) History(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	userID := QueryInt(r, "user_id", 1)
	key := cache.MakeKey(userID, "/query")

	if h.cache != nil {
		if body, ok := h.cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	recs := h.api.GetQueryHistory(r.Context(), userID)
	body, err := json.Marshal(recs)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode query history")
		return
	}

	if h.cache != nil && len(recs) > 0 {
		h.cache.Set(key, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
