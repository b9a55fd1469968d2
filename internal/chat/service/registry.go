package service

import (
	"log"
	"sync"
)

// Channel is the outbound half of one live connection. Implementations must
// be safe for concurrent Send calls.
type Channel interface {
	Send(v interface{}) error
	Close() error
}

// Registry maps a user identity to at most one live channel. It is the only
// concurrently-mutated in-memory structure in the subsystem.
type Registry struct {
	mu    sync.RWMutex
	conns map[uint64]Channel
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[uint64]Channel),
	}
}

// Register binds a channel to a user. An existing binding is closed and
// replaced: a new connect for an already-connected user supersedes the prior
// session.
func (r *Registry) Register(userID uint64, ch Channel) {
	r.mu.Lock()
	old, existed := r.conns[userID]
	r.conns[userID] = ch
	r.mu.Unlock()

	if existed {
		log.Printf("user %d reconnected, closing superseded session", userID)
		if err := old.Close(); err != nil {
			log.Printf("closing superseded channel for user %d: %v", userID, err)
		}
	}
}

func (r *Registry) Lookup(userID uint64) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.conns[userID]
	return ch, ok
}

// Remove drops the binding and closes the channel on behalf of the caller so
// nothing leaks when a stale binding is evicted.
func (r *Registry) Remove(userID uint64) {
	r.mu.Lock()
	ch, ok := r.conns[userID]
	delete(r.conns, userID)
	r.mu.Unlock()

	if ok {
		ch.Close()
	}
}

// Unregister removes the binding only if it still points at ch, so a
// superseded session tearing down cannot evict its successor.
func (r *Registry) Unregister(userID uint64, ch Channel) {
	r.mu.Lock()
	current, ok := r.conns[userID]
	if ok && current == ch {
		delete(r.conns, userID)
	}
	r.mu.Unlock()

	ch.Close()
}
