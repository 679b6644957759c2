package coursechat

// Exchange is one completed user/assistant message pair in a session.
type Exchange struct {
	UserMessage      string `json:"userMessage"`
	AssistantMessage string `json:"assistantMessage"`
}

// SessionStore keeps bounded per-session conversation history. Sessions are
// created implicitly on first use and live for the process lifetime; there
// is no persistence guarantee across restarts. A session is assumed to have
// a single writer.
type SessionStore interface {
	// History returns the retained exchanges for a session, oldest first.
	// Unknown ids yield an empty slice.
	History(sessionID string) []Exchange

	// Append records one completed exchange, evicting the oldest if the
	// bounded capacity is exceeded.
	Append(sessionID, userMessage, assistantMessage string)
}
