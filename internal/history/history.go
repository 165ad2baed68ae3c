// Package history keeps the bounded, newest-first list of completed
// calculations across all modes.
package history

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-calculator/internal/mode"
	"go-calculator/internal/storage"
)

// MaxEntries is the history capacity; the oldest entry is evicted beyond it.
const MaxEntries = 100

// Entry is one completed calculation. Entries are immutable once created.
type Entry struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Timestamp  time.Time `json:"timestamp"`
	Mode       mode.Mode `json:"mode"`
}

// Store is safe for concurrent use. Every mutation is written through to
// the backing KV under storage.KeyHistory.
type Store struct {
	kv  storage.KV
	now func() time.Time

	mu      sync.RWMutex
	entries []Entry
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore loads any persisted history from kv.
func NewStore(kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory list with the persisted one.
func (s *Store) Reload() error {
	var entries []Entry
	if err := storage.LoadJSON(s.kv, storage.KeyHistory, &entries); err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Add records a calculation at the front of the list and evicts the oldest
// entry once the list exceeds MaxEntries.
func (s *Store) Add(expression, result string, m mode.Mode) (Entry, error) {
	e := Entry{
		ID:         uuid.NewString(),
		Expression: expression,
		Result:     result,
		Timestamp:  s.now(),
		Mode:       m,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Entry, 0, min(len(s.entries)+1, MaxEntries))
	next = append(next, e)
	next = append(next, s.entries[:min(len(s.entries), MaxEntries-1)]...)

	if err := s.commit(next); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Delete removes the entry with the given id. Unknown ids are ignored.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return nil
	}
	return s.commit(slices.Delete(slices.Clone(s.entries), i, i+1))
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(nil)
}

// Entries returns a copy of the list, newest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// ByMode returns the entries recorded in m, newest first.
func (s *Store) ByMode(m mode.Mode) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.Mode == m {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// commit persists next and installs it. On failure the in-memory list is
// left as it was. It must be called with mu held.
func (s *Store) commit(next []Entry) error {
	persisted := next
	if persisted == nil {
		persisted = []Entry{}
	}
	if err := storage.SaveJSON(s.kv, storage.KeyHistory, persisted); err != nil {
		return fmt.Errorf("persisting history: %w", err)
	}
	s.entries = next
	return nil
}
