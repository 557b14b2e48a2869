package queue

import "sync"

// equipmentLocks hands out one mutex per equipment ID so that call-next and
// mark-served serialize per machine without blocking unrelated machines.
type equipmentLocks struct {
	mu    sync.RWMutex
	locks map[int64]*sync.Mutex
}

func newEquipmentLocks() *equipmentLocks {
	return &equipmentLocks{locks: make(map[int64]*sync.Mutex)}
}

// forEquipment returns the mutex for an equipment ID, creating it on first use.
func (l *equipmentLocks) forEquipment(id int64) *sync.Mutex {
	l.mu.RLock()
	m, exists := l.locks[id]
	l.mu.RUnlock()
	if exists {
		return m
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if m, exists = l.locks[id]; exists {
		return m
	}
	m = &sync.Mutex{}
	l.locks[id] = m
	return m
}
