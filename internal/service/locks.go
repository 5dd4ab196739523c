package service

import "sync"

// keyedMutex serializes work per string key. Used to prevent concurrent
// processing of the same upload id and concurrent refreshes of the same
// week.
type keyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
