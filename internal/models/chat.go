package models

import "time"

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// PlaceholderContent is the sentinel content of a pending assistant message.
// It is appended immediately on submission and replaced in place once the
// advisor responds.
const PlaceholderContent = "Generating..."

// ChatMessage is one transcript entry. A message may be replaced in place
// (same ID) when a pending placeholder resolves; the transcript itself is
// append-ordered and never reordered.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatAnswer is the advisor API response for one query.
type ChatAnswer struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	Timestamp string   `json:"timestamp"`
	Status    string   `json:"status,omitempty"`
	Message   string   `json:"message,omitempty"`
}
