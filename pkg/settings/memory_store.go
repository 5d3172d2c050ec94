package settings

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. Every write is also reported to
// active watchers, asynchronously.
type MemoryStore struct {
	mu       sync.Mutex
	birthday *float64
	level    *int
	watchers map[chan Key]struct{}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{watchers: make(map[chan Key]struct{})}
}

func (m *MemoryStore) Birthday() (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.birthday == nil {
		return 0, false, nil
	}
	return *m.birthday, true, nil
}

func (m *MemoryStore) SetBirthday(seconds *float64) error {
	m.mu.Lock()
	if seconds == nil {
		m.birthday = nil
	} else {
		v := *seconds
		m.birthday = &v
	}
	m.notifyLocked(KeyBirthday)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) PrecisionLevel() (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.level == nil {
		return 0, false, nil
	}
	return *m.level, true, nil
}

func (m *MemoryStore) SetPrecisionLevel(level int) error {
	m.mu.Lock()
	m.level = &level
	m.notifyLocked(KeyPrecisionLevel)
	m.mu.Unlock()
	return nil
}

// Watch reports every write until ctx is done.
func (m *MemoryStore) Watch(ctx context.Context, onChange func(Key)) error {
	ch := make(chan Key, 64)

	m.mu.Lock()
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.watchers, ch)
		m.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-ch:
			onChange(key)
		}
	}
}

func (m *MemoryStore) notifyLocked(key Key) {
	for ch := range m.watchers {
		select {
		case ch <- key:
		default:
			// watcher is behind; it will reload on the next event
		}
	}
}

var (
	_ Store   = (*MemoryStore)(nil)
	_ Watcher = (*MemoryStore)(nil)
)
