// Package memory implements the calculator's multi-slot memory register.
//
// Writes to a slot beyond the current length pad the gap with zero slots, up
// to Capacity. Writes at or beyond Capacity, or at a negative index other
// than ActiveSlot, are ignored. Reads of a missing slot return 0.
package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"go-calculator/internal/storage"
)

// Capacity is the maximum number of slots.
const Capacity = 10

// ActiveSlot addresses whichever slot is active when the call runs.
const ActiveSlot = -1

// Slot is one memory register.
type Slot struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

// Store is safe for concurrent use. Every mutation is written through to
// the backing KV under storage.KeyMemory. The active slot is session state
// and is not persisted.
type Store struct {
	kv storage.KV

	mu     sync.RWMutex
	slots  []Slot
	active int
}

func NewStore(kv storage.KV) (*Store, error) {
	s := &Store{kv: kv}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the slots with the persisted ones.
func (s *Store) Reload() error {
	var slots []Slot
	if err := storage.LoadJSON(s.kv, storage.KeyMemory, &slots); err != nil {
		return fmt.Errorf("loading memory: %w", err)
	}
	if len(slots) > Capacity {
		slots = slots[:Capacity]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = slots
	s.clampActive()
	return nil
}

// Add adds v to the active slot.
func (s *Store) Add(v float64) error { return s.AddAt(ActiveSlot, v) }

func (s *Store) AddAt(slot int, v float64) error {
	return s.update(slot, func(old Slot) Slot {
		old.Value += v
		return old
	})
}

// Subtract subtracts v from the active slot.
func (s *Store) Subtract(v float64) error { return s.SubtractAt(ActiveSlot, v) }

func (s *Store) SubtractAt(slot int, v float64) error {
	return s.update(slot, func(old Slot) Slot {
		old.Value -= v
		return old
	})
}

// Store overwrites the active slot with v.
func (s *Store) Store(v float64) error { return s.StoreAt(ActiveSlot, v) }

// StoreAt overwrites the slot, dropping any label.
func (s *Store) StoreAt(slot int, v float64) error {
	return s.update(slot, func(Slot) Slot { return Slot{Value: v} })
}

// SetLabel names an existing or padded slot.
func (s *Store) SetLabel(slot int, label string) error {
	return s.update(slot, func(old Slot) Slot {
		old.Label = label
		return old
	})
}

// Recall returns the active slot's value.
func (s *Store) Recall() float64 { return s.RecallAt(ActiveSlot) }

// RecallAt returns the slot's value, or 0 when the slot does not exist.
func (s *Store) RecallAt(slot int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot = s.resolve(slot)
	if slot < 0 || slot >= len(s.slots) {
		return 0
	}
	return s.slots[slot].Value
}

// ClearAll empties the store and resets the active slot.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = nil
	s.active = 0
	return s.persist()
}

// ClearAt removes one slot, shifting later slots down by one.
func (s *Store) ClearAt(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot = s.resolve(slot)
	if slot < 0 || slot >= len(s.slots) {
		return nil
	}
	s.slots = slices.Delete(slices.Clone(s.slots), slot, slot+1)
	s.clampActive()
	return s.persist()
}

// NewSlot appends a slot holding v and makes it active. It reports false
// when the store is full.
func (s *Store) NewSlot(v float64) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.slots) >= Capacity {
		return 0, false, nil
	}
	s.slots = append(slices.Clone(s.slots), Slot{Value: v})
	s.active = len(s.slots) - 1
	return s.active, true, s.persist()
}

// Select makes an existing slot active. It reports false for a slot that
// does not exist.
func (s *Store) Select(slot int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot < 0 || slot >= len(s.slots) {
		return false
	}
	s.active = slot
	return true
}

func (s *Store) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Slots returns a copy of all slots.
func (s *Store) Slots() []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.slots)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

// Format renders a slot value with at most eight decimal places and no
// trailing zeros.
func Format(v float64) string {
	return decimal.NewFromFloat(v).Round(8).String()
}

func (s *Store) update(slot int, fn func(Slot) Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot = s.resolve(slot)
	if slot < 0 || slot >= Capacity {
		return nil
	}

	next := slices.Clone(s.slots)
	for len(next) <= slot {
		next = append(next, Slot{})
	}
	next[slot] = fn(next[slot])
	s.slots = next
	return s.persist()
}

// resolve maps ActiveSlot to the active index. It must be called with mu
// held.
func (s *Store) resolve(slot int) int {
	if slot == ActiveSlot {
		return s.active
	}
	return slot
}

func (s *Store) clampActive() {
	if s.active >= len(s.slots) {
		s.active = max(len(s.slots)-1, 0)
	}
}

// persist must be called with mu held.
func (s *Store) persist() error {
	slots := s.slots
	if slots == nil {
		slots = []Slot{}
	}
	if err := storage.SaveJSON(s.kv, storage.KeyMemory, slots); err != nil {
		return fmt.Errorf("persisting memory: %w", err)
	}
	return nil
}
