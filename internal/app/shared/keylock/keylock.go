// Package keylock provides a mutex per string key. The interaction engine
// holds a key's lock for the full read-modify-write of one NPC's state, so
// updates to the same NPC serialize while different NPCs proceed in parallel.
package keylock

import "sync"

type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyLock {
	return &KeyLock{locks: map[string]*sync.Mutex{}}
}

// Lock acquires the mutex for key, creating it on first use. Locks are never
// evicted: the key space is bounded by the NPC population.
func (k *KeyLock) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
}

func (k *KeyLock) Unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
