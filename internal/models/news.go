package models

// NewsArticle is a submitted article with its backend-generated summary.
type NewsArticle struct {
	ID         int    `json:"id,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	NewsSource string `json:"news_source"`
	Content    string `json:"content"`
	Summary    string `json:"summary"`
}

// QueryRecord is one natural-language query and its stored response.
type QueryRecord struct {
	ID        int    `json:"id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Query     string `json:"query"`
	Response  string `json:"response"`
	UserID    int    `json:"user_id,omitempty"`
}

// Feedback is free-text feedback on a report or query response.
type Feedback struct {
	ID          int    `json:"id,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	Description string `json:"feedback_description"`
	UserID      int    `json:"user_id,omitempty"`
}
