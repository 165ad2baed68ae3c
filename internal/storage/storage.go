// Package storage is the flat key-value persistence layer shared by the
// history and memory stores and the user preferences. Writes are
// last-write-wins and carry no schema version.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go-calculator/internal/observability"
)

// Fixed keys.
const (
	KeyTheme    = "calculator-theme"
	KeyHistory  = "calculator-history"
	KeyMemory   = "calculator-memory"
	KeyLastMode = "calculator-last-mode"
)

// KV is a string key-value store.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MemoryKV keeps values in process memory only.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// LoadJSON decodes the value under key into dst. A missing key leaves dst
// untouched. A corrupt value is logged and treated as missing.
func LoadJSON(kv KV, key string, dst any) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		observability.Logger.Warn("discarding unreadable stored value",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := kv.Set(key, string(raw)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
