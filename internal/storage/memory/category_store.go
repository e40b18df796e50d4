package memory

import (
	"context"
	"sort"
	"sync"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// CategoryStore is an in-memory implementation of storage.CategoryStore.
type CategoryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.FlatCategory
}

// NewCategoryStore creates a new in-memory category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		data: make(map[string]*domain.FlatCategory),
	}
}

// Insert adds a category row. Returns ErrDuplicateKey if the ID exists.
func (s *CategoryStore) Insert(_ context.Context, c *domain.FlatCategory) error {
	if c == nil || c.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[c.ID]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[c.ID] = copyCategory(c)
	return nil
}

// GetAll retrieves every category row, ordered by ID ASC.
func (s *CategoryStore) GetAll(_ context.Context) ([]*domain.FlatCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.FlatCategory, 0, len(s.data))
	for _, c := range s.data {
		result = append(result, copyCategory(c))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func copyCategory(c *domain.FlatCategory) *domain.FlatCategory {
	cc := *c
	if c.ParentID != nil {
		p := *c.ParentID
		cc.ParentID = &p
	}
	return &cc
}

var _ storage.CategoryStore = (*CategoryStore)(nil)
