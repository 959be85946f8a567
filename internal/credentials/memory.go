package credentials

import "sync"

// MemoryKV is an in-memory backend for testing.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string

	// FailWrites makes Set/Delete return writeErr when set, to exercise the
	// swallow-and-log paths.
	FailWrites bool
	WriteErr   error
}

// NewMemoryKV builds an empty in-memory key/value store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) error {
	if m.FailWrites {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	if m.FailWrites {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryKV) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *MemoryKV) Close() error { return nil }
