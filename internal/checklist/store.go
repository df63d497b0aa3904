package checklist

import (
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("checklist session not found")

// Store keeps per-run checklist sessions in memory. Sessions live for the
// duration of the review; nothing is persisted.
type Store struct {
	mu    sync.RWMutex
	lists map[string]*List
}

func NewStore() *Store {
	return &Store{lists: make(map[string]*List)}
}

// Seed creates (or replaces) the session for a run from the caller-supplied
// initial items.
func (s *Store) Seed(runID string, items []Item) []Item {
	l := NewList(items, nil)
	s.mu.Lock()
	s.lists[runID] = l
	s.mu.Unlock()
	return l.Items()
}

// Items returns the current snapshot for a run's session.
func (s *Store) Items(runID string) ([]Item, error) {
	s.mu.RLock()
	l, ok := s.lists[runID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return l.Items(), nil
}

// Toggle advances one item in a run's session and returns the full updated
// snapshot.
func (s *Store) Toggle(runID, itemID string) ([]Item, error) {
	s.mu.RLock()
	l, ok := s.lists[runID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return l.Toggle(itemID)
}
