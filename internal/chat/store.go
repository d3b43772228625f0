package chat

import (
	"sync"

	"github.com/bamcapital/bam-portal/internal/common"
)

// Store is the in-memory session registry. Sessions are created at first
// use and live until the process exits or the caller resets them; nothing
// is persisted.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	advisor  Advisor
	logger   *common.Logger
}

// NewStore creates an empty session store.
func NewStore(advisor Advisor, logger *common.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		advisor:  advisor,
		logger:   logger,
	}
}

// GetOrCreate returns the session with the given ID, creating it if
// needed. An empty ID creates a fresh session with a generated ID.
func (st *Store) GetOrCreate(id string) *Session {
	if id != "" {
		st.mu.RLock()
		s, ok := st.sessions[id]
		st.mu.RUnlock()
		if ok {
			return s
		}
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if id != "" {
		if s, ok := st.sessions[id]; ok {
			return s
		}
	}
	s := NewSession(id, st.advisor, st.logger)
	st.sessions[s.ID()] = s
	return s
}

// Get returns an existing session or ErrSessionNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Reset clears the identified session's transcript. Unknown IDs are a
// no-op so reset is idempotent.
func (st *Store) Reset(id string) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.Reset()
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
