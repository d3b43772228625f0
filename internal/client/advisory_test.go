package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

func testProfile() models.UserProfile {
	return models.UserProfile{
		RiskCategory: models.RiskModerate,
		HorizonYears: 5,
		AnnualIncome: 1000000,
	}
}

func backendRecord() models.ReportRecord {
	return models.ReportRecord{
		ID:                    42,
		RiskAppetite:          "Moderate",
		InvestmentHorizon:     5,
		IncomeLevel:           1000000,
		AssetAllocation:       `{"equity":55,"debt":35,"gold":5,"cash":5}`,
		PerformanceProjection: `{"year1":9.5,"year3":11,"year5":13}`,
		RiskAssessment:        `{"volatility":"Medium","drawdown":"10-20%","recoveryPeriod":"6-12 months"}`,
		UserID:                1,
	}
}

func TestGenerateReport_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/report" {
			t.Errorf("Expected /report, got %s", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Request body is not valid JSON: %v", err)
		}
		if req["risk_appetite"] != "Moderate" {
			t.Errorf("Expected risk_appetite=Moderate, got %v", req["risk_appetite"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(backendRecord())
	}))
	defer mockServer.Close()

	c := NewAdvisoryClient(mockServer.URL, 5*time.Second, testLogger())
	report := c.GenerateReport(context.Background(), testProfile(), 1)

	if report.Source != models.SourceBackend {
		t.Errorf("Expected source=backend, got %s", report.Source)
	}
	if report.ID != 42 {
		t.Errorf("Expected id=42, got %d", report.ID)
	}
	if report.Allocation.Equity != 55 {
		t.Errorf("Expected equity=55, got %f", report.Allocation.Equity)
	}
	if report.Risk.RecoveryPeriod != "6-12 months" {
		t.Errorf("Expected recovery period '6-12 months', got %q", report.Risk.RecoveryPeriod)
	}
}

func TestGenerateReport_BackendUnavailableUsesFallback(t *testing.T) {
	c := NewAdvisoryClient("http://localhost:1", time.Second, testLogger())
	report := c.GenerateReport(context.Background(), testProfile(), 1)

	if report == nil {
		t.Fatal("Expected a fallback report, got nil")
	}
	if report.Source != models.SourceFallback {
		t.Errorf("Expected source=fallback, got %s", report.Source)
	}
	if report.Allocation != (models.AssetAllocation{Equity: 50, Debt: 40, Gold: 5, Cash: 5}) {
		t.Errorf("Expected moderate fallback allocation, got %+v", report.Allocation)
	}
}

func TestGenerateReport_ServerErrorUsesFallback(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	c := NewAdvisoryClient(mockServer.URL, time.Second, testLogger())
	report := c.GenerateReport(context.Background(), testProfile(), 1)

	if report.Source != models.SourceFallback {
		t.Errorf("Expected source=fallback on 500, got %s", report.Source)
	}
}

func TestGenerateReport_MalformedSubDocumentUsesFallback(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := backendRecord()
		rec.AssetAllocation = `{not json`
		json.NewEncoder(w).Encode(rec)
	}))
	defer mockServer.Close()

	c := NewAdvisoryClient(mockServer.URL, time.Second, testLogger())
	report := c.GenerateReport(context.Background(), testProfile(), 1)

	if report.Source != models.SourceFallback {
		t.Errorf("Expected source=fallback on malformed allocation, got %s", report.Source)
	}
}

func TestGetUserReports_SkipsInvalidRecords(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("user_id") != "1" {
			t.Errorf("Expected user_id=1, got %s", r.URL.Query().Get("user_id"))
		}
		good := backendRecord()
		bad := backendRecord()
		bad.ID = 43
		bad.PerformanceProjection = "not json"
		json.NewEncoder(w).Encode([]models.ReportRecord{good, bad})
	}))
	defer mockServer.Close()

	c := NewAdvisoryClient(mockServer.URL, time.Second, testLogger())
	reports := c.GetUserReports(context.Background(), 1)

	if len(reports) != 1 {
		t.Fatalf("Expected 1 valid report, got %d", len(reports))
	}
	if reports[0].ID != 42 {
		t.Errorf("Expected the valid record to survive, got id=%d", reports[0].ID)
	}
}

func TestGetUserReports_BackendUnavailableReturnsEmpty(t *testing.T) {
	c := NewAdvisoryClient("http://localhost:1", time.Second, testLogger())
	reports := c.GetUserReports(context.Background(), 1)

	if reports == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(reports) != 0 {
		t.Errorf("Expected 0 reports, got %d", len(reports))
	}
}

func TestSubmitNews_FailureReturnsCannedSummary(t *testing.T) {
	c := NewAdvisoryClient("http://localhost:1", time.Second, testLogger())
	article := c.SubmitNews(context.Background(), "RBI holds rates steady.", "manual")

	if article.Summary != NewsUnavailableSummary {
		t.Errorf("Expected canned summary, got %q", article.Summary)
	}
	if article.Content != "RBI holds rates steady." {
		t.Errorf("Expected submitted content to be preserved, got %q", article.Content)
	}
}

func TestGetRecentNews_DefaultLimit(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "10" {
			t.Errorf("Expected limit=10, got %s", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode([]models.NewsArticle{{NewsSource: "wire", Summary: "short"}})
	}))
	defer mockServer.Close()

	c := NewAdvisoryClient(mockServer.URL, time.Second, testLogger())
	articles := c.GetRecentNews(context.Background(), 0)

	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}
}

func TestSubmitQuery_FailureReturnsCannedAnswer(t *testing.T) {
	c := NewAdvisoryClient("http://localhost:1", time.Second, testLogger())
	rec := c.SubmitQuery(context.Background(), "What is an ELSS fund?", 1)

	if rec.Response != QueryUnavailableAnswer {
		t.Errorf("Expected canned answer, got %q", rec.Response)
	}
	if rec.Query != "What is an ELSS fund?" {
		t.Errorf("Expected query to be preserved, got %q", rec.Query)
	}
}

func TestSubmitFeedback_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Request body is not valid JSON: %v", err)
		}
		if req["feedback_description"] != "very helpful" {
			t.Errorf("Expected feedback_description, got %v", req)
		}
		json.NewEncoder(w).Encode(models.Feedback{Description: "very helpful"})
	}))
	defer mockServer.Close()

	c := NewAdvisoryClient(mockServer.URL, time.Second, testLogger())
	fb, err := c.SubmitFeedback(context.Background(), 42, "very helpful")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fb.Description != "very helpful" {
		t.Errorf("Expected echoed feedback, got %q", fb.Description)
	}
}

func TestSubmitFeedback_FailurePropagates(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer mockServer.Close()

	c := NewAdvisoryClient(mockServer.URL, time.Second, testLogger())
	_, err := c.SubmitFeedback(context.Background(), 42, "anything")
	if err == nil {
		t.Fatal("Expected feedback submission error to propagate")
	}
}
