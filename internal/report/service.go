// Package report holds the session-scoped report generator state and the
// feedback submission contract.
package report

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

// ErrEmptyFeedback is returned when feedback text is empty or
// whitespace-only; no network call is made in that case.
var ErrEmptyFeedback = errors.New("feedback text is empty")

// Generator is the advisory operations the service needs.
type Generator interface {
	GenerateReport(ctx context.Context, profile models.UserProfile, userID int) *models.InvestmentReport
	SubmitFeedback(ctx context.Context, targetID int, text string) (*models.Feedback, error)
}

// Service keeps the current generated report for a session and manages
// the feedback draft. The report lives only in memory: Reset destroys it.
type Service struct {
	mu      sync.Mutex
	gen     Generator
	logger  *common.Logger
	current *models.InvestmentReport
	draft   string
}

// NewService creates a report service backed by the given generator.
func NewService(gen Generator, logger *common.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Generate produces a report for the profile and retains it as the
// current report. Generation never fails: the client degrades to the
// fallback table internally.
func (s *Service) Generate(ctx context.Context, profile models.UserProfile, userID int) (*models.InvestmentReport, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	r := s.gen.GenerateReport(ctx, profile, userID)

	s.mu.Lock()
	s.current = r
	s.mu.Unlock()

	s.logger.Info().
		Str("risk", string(r.RiskCategory)).
		Int("horizon", r.HorizonYears).
		Str("source", r.Source).
		Msg("investment report generated")
	return r, nil
}

// Current returns the retained report, or nil if none was generated or
// the generator was reset.
func (s *Service) Current() *models.InvestmentReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset discards the current report and feedback draft.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.draft = ""
}

// SetFeedbackDraft stores the in-progress feedback text.
func (s *Service) SetFeedbackDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// FeedbackDraft returns the in-progress feedback text.
func (s *Service) FeedbackDraft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SubmitFeedback submits the given text for the current report.
// Empty or whitespace-only text is rejected locally with ErrEmptyFeedback
// before any network call. On success the draft is cleared; on failure it
// is retained and the error propagates so the caller can surface a
// retryable notice.
func (s *Service) SubmitFeedback(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyFeedback
	}

	targetID := 0
	if cur := s.Current(); cur != nil {
		targetID = cur.ID
	}

	if _, err := s.gen.SubmitFeedback(ctx, targetID, text); err != nil {
		return err
	}

	s.mu.Lock()
	s.draft = ""
	s.mu.Unlock()
	return nil
}
