package services

import (
	"sync"

	"github.com/hyuyu1012/chaeum/models"
)

// EntryStore holds every diary entry in one flat, insertion-ordered
// sequence shared across all dates. The per-date view shown to the user is
// always recomputed from this sequence, and view-relative indices are
// translated to store positions immediately before each mutation; they are
// never stable across mutations, so callers must not cache them.
type EntryStore struct {
	mu      sync.RWMutex
	entries []models.Entry
}

func NewEntryStore() *EntryStore {
	return &EntryStore{}
}

// ViewForDate returns the entries logged on date, in store order.
func (s *EntryStore) ViewForDate(date string) []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Entry
	for _, e := range s.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// All returns a copy of the full sequence, in store order.
func (s *EntryStore) All() []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports the total number of entries across all dates.
func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// IndexInStore translates the viewIndex-th entry of date's view to its
// position in the flat sequence. The second return is false when viewIndex
// is out of range for that date.
func (s *EntryStore) IndexInStore(date string, viewIndex int) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexInStoreLocked(date, viewIndex)
}

func (s *EntryStore) indexInStoreLocked(date string, viewIndex int) (int, bool) {
	if viewIndex < 0 {
		return 0, false
	}
	seen := 0
	for i, e := range s.entries {
		if e.Date != date {
			continue
		}
		if seen == viewIndex {
			return i, true
		}
		seen++
	}
	return 0, false
}

// Append adds an entry at the end of the sequence.
func (s *EntryStore) Append(e models.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// ReplaceAt overwrites the entry at a store position, preserving order.
func (s *EntryStore) ReplaceAt(storeIndex int, e models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if storeIndex < 0 || storeIndex >= len(s.entries) {
		return ErrIndexNotFound
	}
	s.entries[storeIndex] = e
	return nil
}

// RemoveAt deletes the entry at a store position. Store positions after it
// shift down by one.
func (s *EntryStore) RemoveAt(storeIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if storeIndex < 0 || storeIndex >= len(s.entries) {
		return ErrIndexNotFound
	}
	s.entries = append(s.entries[:storeIndex], s.entries[storeIndex+1:]...)
	return nil
}

// RemoveForDate translates a view index and deletes the matching entry
// under a single lock, so the translation cannot go stale between the two
// steps. Returns the removed entry.
func (s *EntryStore) RemoveForDate(date string, viewIndex int) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexInStoreLocked(date, viewIndex)
	if !ok {
		return models.Entry{}, ErrIndexNotFound
	}
	removed := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return removed, nil
}

// CommitReplace translates a view index and overwrites the matching entry
// under a single lock. When the target no longer exists — deleted since the
// edit session opened — the entry is appended instead and false is
// returned, so an edit never silently vanishes.
func (s *EntryStore) CommitReplace(date string, viewIndex int, e models.Entry) (replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.indexInStoreLocked(date, viewIndex); ok {
		s.entries[i] = e
		return true
	}
	s.entries = append(s.entries, e)
	return false
}
