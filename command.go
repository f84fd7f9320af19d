package rubikit

import "sync"

// CommandLock serializes locked commands per sender. While a sender runs a
// locked command, further locked commands from that sender are rejected.
// Unlocked commands never consult it.
type CommandLock struct {
	mu      sync.Mutex
	holders map[string]struct{}
}

// NewCommandLock creates an empty CommandLock.
func NewCommandLock() *CommandLock {
	return &CommandLock{
		holders: make(map[string]struct{}),
	}
}

// TryAcquire takes the lock for senderID. It returns false if the sender
// already holds it.
func (l *CommandLock) TryAcquire(senderID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.holders[senderID]; held {
		return false
	}
	l.holders[senderID] = struct{}{}
	return true
}

// Release frees the lock for senderID.
func (l *CommandLock) Release(senderID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.holders, senderID)
}

// Held reports whether senderID currently holds the lock.
func (l *CommandLock) Held(senderID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, held := l.holders[senderID]
	return held
}

// Do runs fn while holding the lock for senderID and reports whether fn ran.
func (l *CommandLock) Do(senderID string, fn func()) bool {
	if !l.TryAcquire(senderID) {
		return false
	}
	defer l.Release(senderID)
	fn()
	return true
}
