package rubikit

import (
	"maps"
	"slices"
	"sync"
)

// Session is a per-chat key/value bag shared by every handler that sees
// the chat. It is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	values map[string]any
}

func newSession() *Session {
	return &Session{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the string stored under key, or "".
func (s *Session) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// Set stores value under key.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes key.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Keys returns the stored keys in sorted order.
func (s *Session) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Snapshot returns a copy of the stored values.
func (s *Session) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Session returns the session of chatID, creating it on first use.
// Sessions live until DeleteSession is called.
func (b *Bot) Session(chatID string) *Session {
	b.sessionsMu.RLock()
	s, ok := b.sessions[chatID]
	b.sessionsMu.RUnlock()
	if ok {
		return s
	}

	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	if s, ok := b.sessions[chatID]; ok {
		return s
	}
	s = newSession()
	b.sessions[chatID] = s
	return s
}

// DeleteSession drops the session of chatID.
func (b *Bot) DeleteSession(chatID string) {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	delete(b.sessions, chatID)
}
