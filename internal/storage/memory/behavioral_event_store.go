// Package memory provides in-memory store implementations used by tests
// and fixture-driven pipeline runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// BehavioralEventStore is an in-memory implementation of
// storage.BehavioralEventStore.
type BehavioralEventStore struct {
	mu   sync.RWMutex
	data map[string]*domain.RawBehavioralEvent // keyed by event ID
}

// NewBehavioralEventStore creates a new in-memory behavioral event store.
func NewBehavioralEventStore() *BehavioralEventStore {
	return &BehavioralEventStore{
		data: make(map[string]*domain.RawBehavioralEvent),
	}
}

// Insert adds a new event. Returns ErrDuplicateKey if the event ID exists.
func (s *BehavioralEventStore) Insert(_ context.Context, e *domain.RawBehavioralEvent) error {
	if e == nil || e.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[e.ID]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[e.ID] = copyEvent(e)
	return nil
}

// InsertBulk adds multiple events atomically. Fails entire batch on any duplicate.
func (s *BehavioralEventStore) InsertBulk(_ context.Context, events []*domain.RawBehavioralEvent) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(events))
	for _, e := range events {
		if e == nil || e.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[e.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[e.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[e.ID] = struct{}{}
	}

	for _, e := range events {
		s.data[e.ID] = copyEvent(e)
	}
	return nil
}

// FetchPage returns up to limit events matching the action types, strictly
// after the cursor, ordered by (created_at, id) ASC.
func (s *BehavioralEventStore) FetchPage(_ context.Context, actionTypes []string, afterCursor string, limit int) ([]*domain.RawBehavioralEvent, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	wanted := make(map[string]struct{}, len(actionTypes))
	for _, a := range actionTypes {
		wanted[a] = struct{}{}
	}

	s.mu.RLock()
	var ordered []*domain.RawBehavioralEvent
	for _, e := range s.data {
		if len(wanted) > 0 {
			if _, ok := wanted[e.ActionType]; !ok {
				continue
			}
		}
		ordered = append(ordered, copyEvent(e))
	}
	s.mu.RUnlock()

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt != ordered[j].CreatedAt {
			return ordered[i].CreatedAt < ordered[j].CreatedAt
		}
		return ordered[i].ID < ordered[j].ID
	})

	start := 0
	if afterCursor != "" {
		for i, e := range ordered {
			if e.ID == afterCursor {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[start:end], nil
}

func copyEvent(e *domain.RawBehavioralEvent) *domain.RawBehavioralEvent {
	c := *e
	if e.VisitedAts != nil {
		c.VisitedAts = append([]int64(nil), e.VisitedAts...)
	}
	return &c
}

var _ storage.BehavioralEventStore = (*BehavioralEventStore)(nil)
