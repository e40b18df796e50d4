package memory

import (
	"context"
	"sync"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// InteractionDatasetStore is an in-memory append-only sink for normalized
// interaction events.
type InteractionDatasetStore struct {
	mu     sync.RWMutex
	events []*domain.InteractionEvent
}

// NewInteractionDatasetStore creates a new in-memory interaction sink.
func NewInteractionDatasetStore() *InteractionDatasetStore {
	return &InteractionDatasetStore{}
}

// InsertBulk appends a batch of interaction events to the dataset.
func (s *InteractionDatasetStore) InsertBulk(_ context.Context, events []*domain.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		if e == nil {
			return storage.ErrInvalidInput
		}
		c := *e
		s.events = append(s.events, &c)
	}
	return nil
}

// All returns a copy of every stored event in insertion order.
func (s *InteractionDatasetStore) All() []*domain.InteractionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.InteractionEvent, 0, len(s.events))
	for _, e := range s.events {
		c := *e
		result = append(result, &c)
	}
	return result
}

var _ storage.InteractionDatasetStore = (*InteractionDatasetStore)(nil)

// ProductDatasetStore is an in-memory append-only sink for product records.
type ProductDatasetStore struct {
	mu      sync.RWMutex
	records []*domain.ProductRecord
}

// NewProductDatasetStore creates a new in-memory product sink.
func NewProductDatasetStore() *ProductDatasetStore {
	return &ProductDatasetStore{}
}

// InsertBulk appends a batch of product records to the dataset.
func (s *ProductDatasetStore) InsertBulk(_ context.Context, records []*domain.ProductRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r == nil {
			return storage.ErrInvalidInput
		}
		c := *r
		s.records = append(s.records, &c)
	}
	return nil
}

// All returns a copy of every stored record in insertion order.
func (s *ProductDatasetStore) All() []*domain.ProductRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ProductRecord, 0, len(s.records))
	for _, r := range s.records {
		c := *r
		result = append(result, &c)
	}
	return result
}

var _ storage.ProductDatasetStore = (*ProductDatasetStore)(nil)
