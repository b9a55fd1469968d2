package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeChannel records outbound frames for assertions across the service
// tests.
type fakeChannel struct {
	mu      sync.Mutex
	frames  []interface{}
	closed  bool
	sendErr error
}

func (c *fakeChannel) Send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.frames = append(c.frames, v)
	return nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeChannel) sentFrames() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]interface{}, len(c.frames))
	copy(out, c.frames)
	return out
}

func (c *fakeChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestRegistry_RegisterLookupRemove(t *testing.T) {
	r := NewRegistry()
	ch := &fakeChannel{}

	_, ok := r.Lookup(1)
	assert.False(t, ok)

	r.Register(1, ch)
	got, ok := r.Lookup(1)
	assert.True(t, ok)
	assert.Same(t, ch, got.(*fakeChannel))

	r.Remove(1)
	_, ok = r.Lookup(1)
	assert.False(t, ok)
	assert.True(t, ch.isClosed(), "Remove closes the channel on behalf of the caller")
}

func TestRegistry_RegisterSupersedesExisting(t *testing.T) {
	r := NewRegistry()
	first := &fakeChannel{}
	second := &fakeChannel{}

	r.Register(7, first)
	r.Register(7, second)

	assert.True(t, first.isClosed(), "superseded channel must be closed")
	assert.False(t, second.isClosed())

	got, ok := r.Lookup(7)
	assert.True(t, ok)
	assert.Same(t, second, got.(*fakeChannel))
}

func TestRegistry_UnregisterOnlyRemovesOwnBinding(t *testing.T) {
	r := NewRegistry()
	old := &fakeChannel{}
	current := &fakeChannel{}

	r.Register(3, old)
	r.Register(3, current)

	// The superseded session tears down late; its cleanup must not evict
	// the new binding.
	r.Unregister(3, old)

	got, ok := r.Lookup(3)
	assert.True(t, ok)
	assert.Same(t, current, got.(*fakeChannel))

	r.Unregister(3, current)
	_, ok = r.Lookup(3)
	assert.False(t, ok)
	assert.True(t, current.isClosed())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(userID uint64) {
			defer wg.Done()
			ch := &fakeChannel{}
			r.Register(userID, ch)
			r.Lookup(userID)
			r.Remove(userID)
		}(uint64(i % 10))
	}
	wg.Wait()
}

var errBrokenPipe = errors.New("broken pipe")
