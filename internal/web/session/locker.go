package session

import (
	"sync"
)

// Locker hands out one mutex per key. Entries are dropped once nobody holds
// or waits for them.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*lockEntry)}
}

// Lock blocks until key is free and returns the function releasing it.
func (l *Locker) Lock(key string) func() {
	l.mu.Lock()

	e, found := l.locks[key]
	if !found {
		e = &lockEntry{}
		l.locks[key] = e
	}

	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		defer l.mu.Unlock()

		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}
