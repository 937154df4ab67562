package session

import (
	"strconv"
	"sync"
	"time"
)

const (
	memoryCleanupInterval = 10 * time.Minute
	memoryStaleThreshold  = 30 * time.Minute
)

// Exchange is one user/bot round trip kept in conversation memory.
type Exchange struct {
	UserMessage string `json:"user_message"`
	BotResponse string `json:"bot_response"`
	Confidence  string `json:"confidence"`
	Timestamp   string `json:"timestamp"`
}

// conversation holds one session's history and last-seen time.
type conversation struct {
	history  []Exchange
	lastSeen time.Time
}

// Memory holds per-session conversation history, capped at a fixed window.
// Sessions idle past the stale threshold are swept inline during Append,
// so no background goroutine is needed. Safe for concurrent use. All state
// is in-process; it is lost on restart.
type Memory struct {
	window int

	mu          sync.Mutex
	sessions    map[string]*conversation
	lastCleanup time.Time
}

// NewMemory creates a conversation memory keeping the last window exchanges
// per session. A window below 1 is treated as 1.
func NewMemory(window int) *Memory {
	if window < 1 {
		window = 1
	}
	return &Memory{
		window:      window,
		sessions:    make(map[string]*conversation),
		lastCleanup: time.Now(),
	}
}

// History returns a copy of the remembered exchanges for a session,
// oldest first.
func (m *Memory) History(sessionID string) []Exchange {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]Exchange, len(c.history))
	copy(out, c.history)
	return out
}

// Append records an exchange, trimming the history to the window.
// The timestamp is the entry's position counter, matching how the
// original surfaced it.
func (m *Memory) Append(sessionID, userMessage, botResponse, confidence string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	if now.Sub(m.lastCleanup) > memoryCleanupInterval {
		for id, c := range m.sessions {
			if now.Sub(c.lastSeen) > memoryStaleThreshold {
				delete(m.sessions, id)
			}
		}
		m.lastCleanup = now
	}

	c, ok := m.sessions[sessionID]
	if !ok {
		c = &conversation{}
		m.sessions[sessionID] = c
	}
	c.lastSeen = now
	c.history = append(c.history, Exchange{
		UserMessage: userMessage,
		BotResponse: botResponse,
		Confidence:  confidence,
		Timestamp:   strconv.Itoa(len(c.history)),
	})
	if len(c.history) > m.window {
		c.history = c.history[len(c.history)-m.window:]
	}
}

// Clear forgets a session's history.
func (m *Memory) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len reports how many exchanges are remembered for a session.
func (m *Memory) Len(sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.sessions[sessionID]
	if !ok {
		return 0
	}
	return len(c.history)
}
