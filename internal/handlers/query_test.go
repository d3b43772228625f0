package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bamcapital/bam-portal/internal/cache"
	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

// fakeQueryAPI echoes queries and counts history reads.
type fakeQueryAPI struct {
	reads int
}

func (f *fakeQueryAPI) SubmitQuery(ctx context.Context, text string, userID int) *models.QueryRecord {
	return &models.QueryRecord{Query: text, Response: "echo: " + text, UserID: userID}
}

func (f *fakeQueryAPI) GetQueryHistory(ctx context.Context, userID int) []models.QueryRecord {
	f.reads++
	return []models.QueryRecord{{Query: "old", Response: "answer", UserID: userID}}
}

func TestQuerySubmit_RequiresQuery(t *testing.T) {
	h := NewQueryHandler(common.NewSilentLogger(), &fakeQueryAPI{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":""}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank query, got %d", rec.Code)
	}
}

func TestQuerySubmit_Success(t *testing.T) {
	h := NewQueryHandler(common.NewSilentLogger(), &fakeQueryAPI{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"What is NAV?","user_id":2}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "echo: What is NAV?") {
		t.Errorf("Expected echoed response, got %s", rec.Body.String())
	}
}

func TestQueryHistory_CachesPerUser(t *testing.T) {
	api := &fakeQueryAPI{}
	h := NewQueryHandler(common.NewSilentLogger(), api, cache.New(time.Minute, 16))

	h.History(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/queries?user_id=1", nil))
	h.History(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/queries?user_id=1", nil))
	if api.reads != 1 {
		t.Errorf("Expected 1 read for same user, got %d", api.reads)
	}

	h.History(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/queries?user_id=2", nil))
	if api.reads != 2 {
		t.Errorf("Expected separate cache entry per user, got %d reads", api.reads)
	}
}

func TestQuerySubmit_InvalidatesHistoryCache(t *testing.T) {
	api := &fakeQueryAPI{}
	h := NewQueryHandler(common.NewSilentLogger(), api, cache.New(time.Minute, 16))

	h.History(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/queries?user_id=1", nil))
	h.Submit(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"new","user_id":1}`)))
	h.History(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/queries?user_id=1", nil))

	if api.reads != 2 {
		t.Errorf("Expected submit to invalidate history cache, got %d reads", api.reads)
	}
}
