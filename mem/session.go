// Package mem provides in-memory implementations of coursechat services.
// Sessions are process-lifetime state with no persistence guarantee.
package mem

import (
	"sync"

	"github.com/hransun/coursechat"
)

// Ensure SessionStore implements coursechat.SessionStore at compile time.
var _ coursechat.SessionStore = (*SessionStore)(nil)

// SessionStore keeps bounded conversation history per session id. Each
// session is a FIFO of fixed capacity: appending beyond the bound evicts
// the oldest exchange.
type SessionStore struct {
	mu         sync.RWMutex
	maxHistory int
	sessions   map[string][]coursechat.Exchange
}

// NewSessionStore creates a SessionStore retaining at most maxHistory
// exchange pairs per session. A non-positive bound falls back to
// coursechat.DefaultMaxHistory.
func NewSessionStore(maxHistory int) *SessionStore {
	if maxHistory <= 0 {
		maxHistory = coursechat.DefaultMaxHistory
	}
	return &SessionStore{
		maxHistory: maxHistory,
		sessions:   make(map[string][]coursechat.Exchange),
	}
}

// History returns the retained exchanges for a session, oldest first.
// Unknown session ids yield an empty slice; creation is implicit.
func (s *SessionStore) History(sessionID string) []coursechat.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exchanges := s.sessions[sessionID]
	if len(exchanges) == 0 {
		return nil
	}
	out := make([]coursechat.Exchange, len(exchanges))
	copy(out, exchanges)
	return out
}

// Append records one completed exchange, evicting the oldest when the
// session exceeds its bound.
func (s *SessionStore) Append(sessionID, userMessage, assistantMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exchanges := append(s.sessions[sessionID], coursechat.Exchange{
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
	})
	if len(exchanges) > s.maxHistory {
		exchanges = exchanges[len(exchanges)-s.maxHistory:]
	}
	s.sessions[sessionID] = exchanges
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
