package registry

import "sync"

type entry struct {
	int32Value  *int32
	stringValue *string
	blobValue   []byte
	isBlob      bool
}

// Memory is an in-process registry safe for concurrent use
type Memory struct {
	mux     sync.RWMutex
	entries map[string]*entry
}

// NewMemory creates an empty registry
func NewMemory() *Memory {
	return &Memory{entries: map[string]*entry{}}
}

func (m *Memory) Exists(key string) bool {
	m.mux.RLock()
	defer m.mux.RUnlock()
	_, ok := m.entries[key]
	return ok
}

func (m *Memory) GetInt32(key string) (int32, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	if e, ok := m.entries[key]; ok && e.int32Value != nil {
		return *e.int32Value, true
	}
	return 0, false
}

func (m *Memory) SetInt32(key string, value int32) {
	m.put(key, &entry{int32Value: &value})
}

func (m *Memory) GetString(key string) (string, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	if e, ok := m.entries[key]; ok && e.stringValue != nil {
		return *e.stringValue, true
	}
	return "", false
}

func (m *Memory) SetString(key string, value string) {
	m.put(key, &entry{stringValue: &value})
}

// GetBlob returns a copy of the stored bytes
func (m *Memory) GetBlob(key string) ([]byte, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	if e, ok := m.entries[key]; ok && e.isBlob {
		return append([]byte{}, e.blobValue...), true
	}
	return nil, false
}

func (m *Memory) SetBlob(key string, value []byte) {
	m.put(key, &entry{blobValue: append([]byte{}, value...), isBlob: true})
}

// Len returns the number of stored keys
func (m *Memory) Len() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return len(m.entries)
}

func (m *Memory) put(key string, value *entry) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.entries[key] = value
}
