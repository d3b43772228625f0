// Package client contains the HTTP clients for the remote advisory,
// chat, and market-quote APIs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

// Canned degradation strings, returned when the backend cannot serve a
// request. These must stay stable: the UI renders them verbatim.
const (
	NewsUnavailableSummary = "Unable to generate summary at this time. Please try again later."
	QueryUnavailableAnswer = "I apologize, but I am unable to process your query at this time. Please try again later."
)

// DefaultNewsLimit is used when a caller asks for recent news without a limit.
const DefaultNewsLimit = 10

// AdvisoryClient communicates with the advisory backend REST API.
// Every read/generate operation degrades to a safe local default on
// failure so the caller always has something renderable; only feedback
// submission propagates its error.
type AdvisoryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// NewAdvisoryClient creates a new client targeting the given advisory backend URL.
func NewAdvisoryClient(baseURL string, timeout time.Duration, logger *common.Logger) *AdvisoryClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AdvisoryClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GenerateReport requests a personalized investment report.
// POST /report with snake_case profile fields -> ReportRecord.
// On any failure (transport, non-2xx, malformed body) it synthesizes a
// fallback report from the fixed per-category table so report generation
// never blocks on backend availability.
func (c *AdvisoryClient) GenerateReport(ctx context.Context, profile models.UserProfile, userID int) *models.InvestmentReport {
	if userID == 0 {
		userID = 1
	}
	body := map[string]interface{}{
		"risk_appetite":      profile.RiskCategory,
		"investment_horizon": profile.HorizonYears,
		"income_level":       profile.AnnualIncome,
		"user_id":            userID,
	}

	var rec models.ReportRecord
	if err := c.postJSON(ctx, "/report", body, &rec); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("report generation failed, using fallback")
		return FallbackReport(profile, userID)
	}

	report, err := models.DecodeReport(rec)
	if err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("report response invalid, using fallback")
		return FallbackReport(profile, userID)
	}
	if sum := report.Allocation.Sum(); sum != 100 {
		c.logger.Warn().Str("sum", fmt.Sprintf("%.2f", sum)).Msg("asset allocation does not sum to 100")
	}
	return report
}

// GetUserReports fetches previously generated reports for a user.
// GET /report?user_id=N. On failure returns an empty list. Records with
// malformed sub-documents are skipped, not fatal to the rest of the list.
func (c *AdvisoryClient) GetUserReports(ctx context.Context, userID int) []*models.InvestmentReport {
	var recs []models.ReportRecord
	if err := c.getJSON(ctx, fmt.Sprintf("/report?user_id=%d", userID), &recs); err != nil {
		c.logger.Warn().Str("error", err.Error()).Int("user_id", userID).Msg("failed to fetch user reports")
		return []*models.InvestmentReport{}
	}

	reports := make([]*models.InvestmentReport, 0, len(recs))
	for _, rec := range recs {
		report, err := models.DecodeReport(rec)
		if err != nil {
			c.logger.Warn().Int("report_id", rec.ID).Str("error", err.Error()).Msg("skipping invalid report record")
			continue
		}
		reports = append(reports, report)
	}
	return reports
}

// SubmitNews submits an article for summarization.
// POST /news {news_source, content}. On failure returns the article with
// a canned unavailable summary.
func (c *AdvisoryClient) SubmitNews(ctx context.Context, content, source string) *models.NewsArticle {
	body := map[string]string{
		"news_source": source,
		"content":     content,
	}

	var article models.NewsArticle
	if err := c.postJSON(ctx, "/news", body, &article); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("news summarization failed")
		return &models.NewsArticle{
			NewsSource: source,
			Content:    content,
			Summary:    NewsUnavailableSummary,
		}
	}
	return &article
}

// GetRecentNews fetches recent summarized articles.
// GET /news?limit=N (limit defaults to 10). On failure returns an empty list.
func (c *AdvisoryClient) GetRecentNews(ctx context.Context, limit int) []models.NewsArticle {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}

	var articles []models.NewsArticle
	if err := c.getJSON(ctx, fmt.Sprintf("/news?limit=%d", limit), &articles); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("failed to fetch recent news")
		return []models.NewsArticle{}
	}
	return articles
}

// SubmitQuery submits a natural-language query.
// POST /query {query, user_id}. On failure returns the query with a canned
// apology response.
func (c *AdvisoryClient) SubmitQuery(ctx context.Context, text string, userID int) *models.QueryRecord {
	body := map[string]interface{}{
		"query":   text,
		"user_id": userID,
	}

	var rec models.QueryRecord
	if err := c.postJSON(ctx, "/query", body, &rec); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("query submission failed")
		return &models.QueryRecord{
			Query:    text,
			Response: QueryUnavailableAnswer,
			UserID:   userID,
		}
	}
	return &rec
}

// GetQueryHistory fetches a user's stored queries.
// GET /query?user_id=N. On failure returns an empty list.
func (c *AdvisoryClient) GetQueryHistory(ctx context.Context, userID int) []models.QueryRecord {
	var recs []models.QueryRecord
	if err := c.getJSON(ctx, fmt.Sprintf("/query?user_id=%d", userID), &recs); err != nil {
		c.logger.Warn().Str("error", err.Error()).Int("user_id", userID).Msg("failed to fetch query history")
		return []models.QueryRecord{}
	}
	return recs
}

// SubmitFeedback submits free-text feedback for a report or query.
// POST /feedback {feedback_description}. This is the one write with no
// fallback: the error propagates so the caller can surface a retryable
// failure notice and keep the input text intact.
func (c *AdvisoryClient) SubmitFeedback(ctx context.Context, targetID int, text string) (*models.Feedback, error) {
	body := map[string]string{
		"feedback_description": text,
	}

	var fb models.Feedback
	if err := c.postJSON(ctx, "/feedback", body, &fb); err != nil {
		return nil, fmt.Errorf("failed to submit feedback for %d: %w", targetID, err)
	}
	return &fb, nil
}

// postJSON POSTs a JSON body and decodes a JSON response into out.
func (c *AdvisoryClient) postJSON(ctx context.Context, path string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// getJSON GETs a path and decodes a JSON response into out.
func (c *AdvisoryClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *AdvisoryClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach advisory backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("advisory backend returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
