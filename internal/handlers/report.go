package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bamcapital/bam-portal/internal/cache"
	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
	"github.com/bamcapital/bam-portal/internal/report"
)

// ReportHandler serves report generation, report history, and feedback.
type ReportHandler struct {
	logger  *common.Logger
	service *report.Service
	history func(r *http.Request, userID int) []*models.InvestmentReport
	cache   *cache.ResponseCache
}

// NewReportHandler creates a new report handler. history fetches the
// stored reports for a user (a thin wrapper over the advisory client).
func NewReportHandler(logger *common.Logger, service *report.Service, history func(r *http.Request, userID int) []*models.InvestmentReport, respCache *cache.ResponseCache) *ReportHandler {
	return &ReportHandler{
		logger:  logger,
		service: service,
		history: history,
		cache:   respCache,
	}
}

// Generate handles POST /api/report: body is the user profile, response
// the generated (or fallback) report.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		RiskAppetite      string  `json:"risk_appetite"`
		InvestmentHorizon int     `json:"investment_horizon"`
		IncomeLevel       float64 `json:"income_level"`
		UserID            int     `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile := models.UserProfile{
		RiskCategory: models.RiskCategory(req.RiskAppetite),
		HorizonYears: req.InvestmentHorizon,
		AnnualIncome: req.IncomeLevel,
	}

	generated, err := h.service.Generate(r.Context(), profile, req.UserID)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.cache != nil {
		h.cache.InvalidateResource("/report")
	}

	WriteJSON(w, http.StatusOK, generated)
}

// History handles GET /api/reports?user_id=N. Backend failures degrade to
// an empty list inside the client, so this always returns 200.
func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	userID := QueryInt(r, "user_id", 1)
	key := cache.MakeKey(userID, "/report")

	if h.cache != nil {
		if body, ok := h.cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	reports := h.history(r, userID)
	body, err := json.Marshal(reports)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode reports")
		return
	}

	if h.cache != nil && len(reports) > 0 {
		h.cache.Set(key, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Reset handles POST /api/report/reset: discards the current report.
func (h *ReportHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	h.service.Reset()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Feedback handles POST /api/feedback. Empty text is rejected locally;
// a backend failure is surfaced as 502 so the caller can retry without
// losing the text.
func (h *ReportHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		FeedbackDescription string `json:"feedback_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.service.SubmitFeedback(r.Context(), req.FeedbackDescription); err != nil {
		if errors.Is(err, report.ErrEmptyFeedback) {
			WriteError(w, http.StatusBadRequest, "Please provide feedback before submitting")
			return
		}
		h.logger.Warn().Str("error", err.Error()).Msg("feedback submission failed")
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Failed to submit feedback. Please try again. (%s)", strings.TrimSpace(err.Error())))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Thank you for your feedback!",
	})
}
