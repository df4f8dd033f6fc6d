package cache

import (
	"context"
	"sync"
	"time"

	appledger "github.com/rentledger/backend/internal/application/ledger"
)

// InMemoryRunLocker implements RunLocker for a single process.
// It does not coordinate replicas.
type InMemoryRunLocker struct {
	mu   sync.Mutex
	now  func() time.Time
	held map[string]heldLock
	seq  uint64
}

type heldLock struct {
	token     uint64
	expiresAt time.Time
}

// NewInMemoryRunLocker creates an empty in-memory locker
func NewInMemoryRunLocker() *InMemoryRunLocker {
	return &InMemoryRunLocker{now: time.Now, held: make(map[string]heldLock)}
}

// TryLock obtains key for ttl unless an unexpired holder exists
func (l *InMemoryRunLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(context.Context), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if h, ok := l.held[key]; ok && now.Before(h.expiresAt) {
		return nil, false, nil
	}

	l.seq++
	token := l.seq
	l.held[key] = heldLock{token: token, expiresAt: now.Add(ttl)}

	release := func(context.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		// an expired lock may have been taken over
		if h, ok := l.held[key]; ok && h.token == token {
			delete(l.held, key)
		}
	}
	return release, true, nil
}

var _ appledger.RunLocker = (*InMemoryRunLocker)(nil)
