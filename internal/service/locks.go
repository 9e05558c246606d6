package service

import (
	"hash/fnv"
	"sync"
)

// lockStripes bounds the number of mutexes held in memory
const lockStripes = 64

// stripedLocks serializes work per key. Distinct keys may share a stripe.
type stripedLocks [lockStripes]sync.Mutex

// lock blocks until key's stripe is free and returns its unlock func
func (l *stripedLocks) lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	mu := &l[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
