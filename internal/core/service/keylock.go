package service

import "sync"

// KeyedLock hands out one mutex per key so that transitions and channel
// link events for the same hiring case never interleave. The admin
// approval request and the asynchronous webhook worker both take the
// case lock before reading status, which is what makes "whichever actor
// completes second delivers the credentials" race-free.
//
// Mutexes are kept for the life of the process; the population is bounded
// by the number of cases touched since startup.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedLock returns an empty KeyedLock.
func NewKeyedLock() *KeyedLock {
	return &KeyedLock{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns the matching unlock func.
func (k *KeyedLock) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
