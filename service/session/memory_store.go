package session

import (
	"context"
	"time"

	"chatshop.GO/core/cache"
)

// MemoryStore keeps sessions in an LRU bounded by count and idle time.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(maxSessions int, idleTTL time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.NewCache(maxSessions, idleTTL)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (Slots, error) {
	v, ok := m.cache.Get(sessionID)
	if !ok {
		return Slots{}, nil
	}
	return cloneSlots(v.(Slots)), nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID, key string) (any, error) {
	v, ok := m.cache.Get(sessionID)
	if !ok {
		return nil, nil
	}
	return v.(Slots)[key], nil
}

func (m *MemoryStore) Apply(_ context.Context, sessionID string, events []SlotSet) error {
	if len(events) == 0 {
		return nil
	}
	m.cache.Update(sessionID, func(old interface{}, ok bool) interface{} {
		next := Slots{}
		if ok {
			next = cloneSlots(old.(Slots))
		}
		for _, ev := range events {
			if ev.Value == nil {
				delete(next, ev.Name)
				continue
			}
			next[ev.Name] = ev.Value
		}
		return next
	})
	return nil
}

// Delete forgets a session.
func (m *MemoryStore) Delete(sessionID string) {
	m.cache.Delete(sessionID)
}

// Len reports how many sessions are held.
func (m *MemoryStore) Len() int {
	return m.cache.Len()
}

// Sweep drops idle sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	return m.cache.CleanupExpired()
}
