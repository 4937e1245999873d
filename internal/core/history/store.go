// Package history persists saved session logs as one JSON document under a
// single versioned key. Every mutation rewrites the whole collection.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/neilberkman/rinselog/internal/core/models"
)

// SlotKey is the versioned key the collection lives under. Keep it stable so
// existing payloads load unchanged.
const SlotKey = "deepRinseLogs_v1"

// ErrNotFound is returned by Get for an unknown identifier.
var ErrNotFound = errors.New("history entry not found")

// Slot is a durable key/value cell.
type Slot interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
}

// Store is the saved-log collection. Entries are kept newest first.
type Store struct {
	slot Slot
	key  string
	now  func() time.Time

	mu      sync.RWMutex
	entries []models.HistoryEntry
	loaded  bool
}

// NewStore returns a store over slot using SlotKey.
func NewStore(slot Slot) *Store {
	return &Store{slot: slot, key: SlotKey, now: time.Now}
}

// WithClock overrides the time source used for new identifiers.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// LoadAll reads the collection from the slot. An absent, unreadable or
// corrupt slot yields an empty collection; the problem is only logged.
func (s *Store) LoadAll() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.read()
	s.loaded = true
	return cloneEntries(s.entries)
}

func (s *Store) read() []models.HistoryEntry {
	raw, ok, err := s.slot.Get(s.key)
	if err != nil {
		log.Printf("[history] reading %s: %v", s.key, err)
		return []models.HistoryEntry{}
	}
	if !ok || raw == "" {
		return []models.HistoryEntry{}
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("[history] %s is not a valid collection, starting empty: %v", s.key, err)
		return []models.HistoryEntry{}
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return entries
}

// Entries returns the cached collection, loading it on first use.
func (s *Store) Entries() []models.HistoryEntry {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return cloneEntries(s.entries)
	}
	s.mu.RUnlock()
	return s.LoadAll()
}

// SaveAll replaces the collection with entries and persists it.
func (s *Store) SaveAll(entries []models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(cloneEntries(entries))
}

func (s *Store) write(entries []models.HistoryEntry) error {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.slot.Put(s.key, string(data)); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	s.entries = entries
	s.loaded = true
	return nil
}

func (s *Store) ensureLoaded() {
	if !s.loaded {
		s.entries = s.read()
		s.loaded = true
	}
}

// Append snapshots session into a new entry at the head of the collection
// and persists the result. Saving identical content twice yields two
// entries with distinct identifiers.
func (s *Store) Append(session models.SessionLog) (models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	id := s.now().UnixMilli()
	for _, e := range s.entries {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	entry := models.HistoryEntry{ID: id, Data: session.Clone()}

	next := make([]models.HistoryEntry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	if err := s.write(next); err != nil {
		return models.HistoryEntry{}, err
	}
	return entry, nil
}

// Remove drops the entry with id. Remaining identifiers are untouched and
// an unknown id still rewrites the unchanged collection.
func (s *Store) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	next := make([]models.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	return s.write(next)
}

// Get returns one entry by identifier.
func (s *Store) Get(id int64) (models.HistoryEntry, error) {
	for _, e := range s.Entries() {
		if e.ID == id {
			return e, nil
		}
	}
	return models.HistoryEntry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Filter returns entries saved within [after, before]. Zero bounds are open.
func (s *Store) Filter(after, before time.Time) []models.HistoryEntry {
	var out []models.HistoryEntry
	for _, e := range s.Entries() {
		at := e.SavedAt()
		if !after.IsZero() && at.Before(after) {
			continue
		}
		if !before.IsZero() && at.After(before) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func cloneEntries(in []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(in))
	for i, e := range in {
		out[i] = models.HistoryEntry{ID: e.ID, Data: e.Data.Clone()}
	}
	return out
}
