package session

import (
	"sync"

	"github.com/jfraser/whosaid/internal/model"
)

// locker hands out one mutex per session code so every controller
// operation runs its read-modify-write cycle exclusively for that code.
// Entries are reference-counted and dropped once the last holder unlocks.
type locker struct {
	mu    sync.Mutex
	codes map[model.SessionCode]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLocker() *locker {
	return &locker{
		codes: make(map[model.SessionCode]*lockEntry),
	}
}

// Lock acquires the mutex for a code and returns the matching unlock
func (l *locker) Lock(code model.SessionCode) func() {
	l.mu.Lock()
	entry, ok := l.codes[code]
	if !ok {
		entry = &lockEntry{}
		l.codes[code] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.codes, code)
		}
		l.mu.Unlock()
	}
}
