package mock

import "github.com/hransun/coursechat"

var _ coursechat.SessionStore = (*SessionStore)(nil)

// SessionStore is a mock implementation of coursechat.SessionStore.
type SessionStore struct {
	HistoryFn func(sessionID string) []coursechat.Exchange
	AppendFn  func(sessionID, userMessage, assistantMessage string)
}

func (s *SessionStore) History(sessionID string) []coursechat.Exchange {
	return s.HistoryFn(sessionID)
}

func (s *SessionStore) Append(sessionID, userMessage, assistantMessage string) {
	s.AppendFn(sessionID, userMessage, assistantMessage)
}
