// Package memory provides the in-process short-term conversation cache.
// It is independent of the durable per-user history in the repository; the
// durable log is the one consulted before generation.
package memory

import (
	"strings"
	"sync"
	"time"

	"anvi/internal/model"
)

// SessionCache keeps the last N turns per session. It is injected into
// request handling rather than accessed as package-global state. Entries are
// only removed by Clear; there is no background eviction for abandoned
// sessions.
type SessionCache struct {
	mu       sync.Mutex // guards the two maps, not the per-session histories
	limit    int
	sessions map[string][]model.Message
	locks    map[string]*sync.Mutex
}

// NewSessionCache creates a cache bounded to limit turns per session
func NewSessionCache(limit int) *SessionCache {
	return &SessionCache{
		limit:    limit,
		sessions: make(map[string][]model.Message),
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockFor returns the session's mutex, creating it lazily on first use.
// Per-session locking serializes append/trim for one session while letting
// different sessions proceed fully in parallel.
func (c *SessionCache) lockFor(sessionID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[sessionID] = lock
	}
	return lock
}

// Add stores a message for the session and trims to the configured limit.
// Returns the current history size.
func (c *SessionCache) Add(sessionID, role, content string) int {
	lock := c.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	history := append(c.sessions[sessionID], model.Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	if len(history) > c.limit {
		history = history[len(history)-c.limit:]
	}
	c.sessions[sessionID] = history
	size := len(history)
	c.mu.Unlock()

	return size
}

// History returns a copy of the session's messages in chronological order
func (c *SessionCache) History(sessionID string) []model.Message {
	lock := c.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	history := c.sessions[sessionID]
	out := make([]model.Message, len(history))
	copy(out, history)
	return out
}

// Formatted renders the session history as "role: content" lines for prompt
// assembly
func (c *SessionCache) Formatted(sessionID string) string {
	messages := c.History(sessionID)
	if len(messages) == 0 {
		return "No previous conversation."
	}

	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// Size returns the number of stored turns for the session
func (c *SessionCache) Size(sessionID string) int {
	lock := c.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions[sessionID])
}

// Clear removes the session's history and lock
func (c *SessionCache) Clear(sessionID string) {
	lock := c.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
	delete(c.locks, sessionID)
}
