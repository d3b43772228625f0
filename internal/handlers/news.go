package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bamcapital/bam-portal/internal/cache"
	"github.com/bamcapital/bam-portal/internal/client"
	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

// NewsAPI is the slice of the advisory client the news handler uses.
type NewsAPI interface {
	SubmitNews(ctx context.Context, content, source string) *models.NewsArticle
	GetRecentNews(ctx context.Context, limit int) []models.NewsArticle
}

// NewsHandler serves news submission and the recent-summaries list.
type NewsHandler struct {
	logger *common.Logger
	api    NewsAPI
	cache  *cache.ResponseCache
}

// NewNewsHandler creates a new news handler.
func NewNewsHandler(logger *common.Logger, api NewsAPI, respCache *cache.ResponseCache) *NewsHandler {
	return &NewsHandler{logger: logger, api: api, cache: respCache}
}

// Submit handles POST /api/news {news_source, content}. A backend failure
// still returns 200 with a canned unavailable summary.
func (h *NewsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		NewsSource string `json:"news_source"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		WriteError(w, http.StatusBadRequest, "content is required")
		return
	}

	article := h.api.SubmitNews(r.Context(), req.Content, req.NewsSource)

	if h.cache != nil {
		h.cache.InvalidateResource("/news")
	}

	WriteJSON(w, http.StatusOK, article)
}

// Recent handles GET /api/news?limit=N.
func (h *NewsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := QueryInt(r, "limit", client.DefaultNewsLimit)
	key := cache.MakeKey(0, "/news?limit="+r.URL.Query().Get("limit"))

	if h.cache != nil {
		if body, ok := h.cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	articles := h.api.GetRecentNews(r.Context(), limit)
	body, err := json.Marshal(articles)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode articles")
		return
	}

	if h.cache != nil && len(articles) > 0 {
		h.cache.Set(key, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
