package admission

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes the read-check-write sequence per key: per
// listing for bid admission, per seller for listing admission. Without
// it two concurrent admissions could observe the same snapshot and
// both be accepted, breaking the strict-increase invariant.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[uuid.UUID]*lockEntry),
	}
}

// Lock acquires the mutex for key, blocking until available.
func (k *keyedMutex) Lock(key uuid.UUID) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the mutex for key and drops the entry once no other
// goroutine is waiting on it.
func (k *keyedMutex) Unlock(key uuid.UUID) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
	}
	k.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
