// Package chat implements the advisor chat exchange loop: an ordered
// transcript where each submission appends a user message plus a pending
// placeholder, and the placeholder is replaced in place once the advisor
// responds or the call fails.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/models"
)

// Submission errors.
var (
	ErrEmptyQuery      = errors.New("query is empty")
	ErrExchangePending = errors.New("an exchange is already pending")
	ErrSessionNotFound = errors.New("chat session not found")
)

// Advisor is the remote call a session makes once per exchange.
type Advisor interface {
	Ask(ctx context.Context, query string) (*models.ChatAnswer, error)
}

// Session owns one conversation transcript. At most one exchange is
// outstanding at a time; a new submission while one is pending is
// rejected rather than queued. Reset cancels in-flight work and bumps
// the epoch so a stale resolution cannot overwrite newer state.
type Session struct {
	mu         sync.Mutex
	id         string
	advisor    Advisor
	logger     *common.Logger
	messages   []models.ChatMessage
	generating bool
	epoch      uint64
	cancel     context.CancelFunc
	createdAt  time.Time
}

// NewSession creates an idle session with an empty transcript.
func NewSession(id string, advisor Advisor, logger *common.Logger) *Session {
	if id == "" {
		id = uuid.New().String()
	}
	return &Session{
		id:        id,
		advisor:   advisor,
		logger:    logger,
		createdAt: time.Now().UTC(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Generating reports whether an exchange is outstanding.
func (s *Session) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// Transcript returns a copy of the message sequence in append order.
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Submit runs one exchange: append the user message and a pending
// placeholder synchronously, perform the network round trip, then replace
// the placeholder in place with the answer or a failure message. The
// returned transcript reflects the resolved state.
//
// Submitting while an exchange is pending returns ErrExchangePending;
// submitting blank input returns ErrEmptyQuery. Neither touches the
// transcript.
func (s *Session) Submit(ctx context.Context, input string) ([]models.ChatMessage, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return nil, ErrExchangePending
	}

	now := time.Now().UTC()
	s.messages = append(s.messages, models.ChatMessage{
		ID:        uuid.New().String(),
		Content:   query,
		Sender:    models.SenderUser,
		Timestamp: now,
	})
	placeholderID := uuid.New().String()
	s.messages = append(s.messages, models.ChatMessage{
		ID:        placeholderID,
		Content:   models.PlaceholderContent,
		Sender:    models.SenderAssistant,
		Timestamp: now,
	})
	s.generating = true
	epoch := s.epoch

	callCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	answer, err := s.advisor.Ask(callCtx, query)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	// A Reset while the call was in flight moved the session on; the
	// stale result must not overwrite the newer state.
	if s.epoch != epoch {
		s.logger.Debug().Str("session", s.id).Msg("discarding stale chat resolution")
		return s.copyTranscriptLocked(), nil
	}

	s.generating = false
	s.cancel = nil

	content := ""
	if err != nil {
		content = fmt.Sprintf(
			"I'm having trouble connecting to the financial advisor service. Please try again later. Error: %s",
			err.Error(),
		)
		s.logger.Warn().Str("session", s.id).Str("error", err.Error()).Msg("chat exchange failed")
	} else {
		content = answer.Answer
	}

	s.replaceLocked(placeholderID, content)
	return s.copyTranscriptLocked(), nil
}

// replaceLocked overwrites the content of the message with the given ID,
// keeping its ID and position. Must be called with mu held.
func (s *Session) replaceLocked(id, content string) {
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Content = content
			s.messages[i].Timestamp = time.Now().UTC()
			return
		}
	}
}

func (s *Session) copyTranscriptLocked() []models.ChatMessage {
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset clears the transcript, cancels any in-flight exchange, and bumps
// the epoch so a late resolution is discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.epoch++
	s.generating = false
	s.messages = nil
}
