package session

import (
	"context"
	"sync"
	"time"

	"cempagamez/internal/storefront"
)

type memEntry struct {
	state   storefront.AppState
	touched time.Time
}

// MemoryStore keeps sessions in process memory; a restart forgets every cart.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memEntry)}
}

func (m *MemoryStore) Get(_ context.Context, sid string) (storefront.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(sid)
	if !ok {
		return storefront.AppState{}, ErrNotFound
	}
	e.touched = m.now()
	m.entries[sid] = e
	return e.state, nil
}

func (m *MemoryStore) Save(_ context.Context, sid string, s storefront.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sid] = memEntry{state: s, touched: m.now()}
	return nil
}

func (m *MemoryStore) Update(_ context.Context, sid string, fn func(storefront.AppState) storefront.AppState) (storefront.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := storefront.NewState()
	if e, ok := m.live(sid); ok {
		cur = e.state
	}
	next := fn(cur)
	m.entries[sid] = memEntry{state: next, touched: m.now()}
	return next, nil
}

// live must be called with mu held. Expired entries are dropped on sight.
func (m *MemoryStore) live(sid string) (memEntry, bool) {
	e, ok := m.entries[sid]
	if !ok {
		return memEntry{}, false
	}
	if m.ttl > 0 && m.now().Sub(e.touched) > m.ttl {
		delete(m.entries, sid)
		return memEntry{}, false
	}
	return e, true
}

// Sweep drops every idle session and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for sid := range m.entries {
		if _, ok := m.live(sid); !ok {
			n++
		}
	}
	return n
}

// Len is the number of stored sessions, expired ones included until swept.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// RunSweeper sweeps every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
