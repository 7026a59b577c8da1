package storage

import "sync"

// Memory is an in-process KV. A positive quota caps the total number of
// bytes held across all keys; writes past it fail with ErrQuotaExceeded,
// which is how a full browser localStorage behaves.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
}

func NewMemory(quota int) *Memory {
	return &Memory{data: make(map[string]string), quota: quota}
}

func (m *Memory) Read(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Write(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		used := 0
		for k, v := range m.data {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used+len(key)+len(value) > m.quota {
			return ErrQuotaExceeded
		}
	}
	m.data[key] = value
	return nil
}

// Snapshot copies the current contents. Used to "restart" against the same
// persisted bytes.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

// NewMemoryFrom seeds a Memory with data taken from Snapshot.
func NewMemoryFrom(data map[string]string) *Memory {
	m := NewMemory(0)
	for k, v := range data {
		m.data[k] = v
	}
	return m
}
