package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bamcapital/bam-portal/internal/chat"
	"github.com/bamcapital/bam-portal/internal/common"
)

// ChatHandler serves the advisor chat exchange loop over HTTP. Each
// request names a session; the store creates sessions on first use.
type ChatHandler struct {
	logger *common.Logger
	store  *chat.Store
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(logger *common.Logger, store *chat.Store) *ChatHandler {
	return &ChatHandler{logger: logger, store: store}
}

// Submit handles POST /api/chat {session_id?, query}. The response holds
// the session ID and the full transcript after the exchange resolved
// (answer or inline failure entry).
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Query     string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session := h.store.GetOrCreate(req.SessionID)

	transcript, err := session.Submit(r.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyQuery):
			WriteError(w, http.StatusBadRequest, "query is empty")
		case errors.Is(err, chat.ErrExchangePending):
			WriteError(w, http.StatusConflict, "an exchange is already pending for this session")
		default:
			WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": session.ID(),
		"generating": session.Generating(),
		"messages":   transcript,
	})
}

// Transcript handles GET /api/chat?session_id=ID.
func (h *ChatHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	session, err := h.store.Get(sessionID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "session not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": session.ID(),
		"generating": session.Generating(),
		"messages":   session.Transcript(),
	})
}

// Reset handles POST /api/chat/reset {session_id}: clears the transcript
// and cancels any in-flight exchange. Idempotent for unknown sessions.
func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.store.Reset(req.SessionID)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
