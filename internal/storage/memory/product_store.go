package memory

import (
	"context"
	"sort"
	"sync"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// ProductStore is an in-memory implementation of storage.ProductStore.
type ProductStore struct {
	mu   sync.RWMutex
	data map[string]*domain.RawProduct
}

// NewProductStore creates a new in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		data: make(map[string]*domain.RawProduct),
	}
}

// Insert adds a catalog row. Returns ErrDuplicateKey if the ID exists.
func (s *ProductStore) Insert(_ context.Context, p *domain.RawProduct) error {
	if p == nil || p.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.ID]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[p.ID] = copyProduct(p)
	return nil
}

// GetForExport retrieves up to limit catalog rows (0 = all), ordered by ID ASC.
func (s *ProductStore) GetForExport(_ context.Context, limit int) ([]*domain.RawProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.RawProduct, 0, len(s.data))
	for _, p := range s.data {
		result = append(result, copyProduct(p))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func copyProduct(p *domain.RawProduct) *domain.RawProduct {
	c := *p
	if p.DeletedAt != nil {
		v := *p.DeletedAt
		c.DeletedAt = &v
	}
	if p.BeforeSalePrice != nil {
		v := *p.BeforeSalePrice
		c.BeforeSalePrice = &v
	}
	c.Variants = append([]domain.Variant(nil), p.Variants...)
	c.Details = append([]domain.ProductDetail(nil), p.Details...)
	c.CategoryIDs = append([]string(nil), p.CategoryIDs...)
	return &c
}

var _ storage.ProductStore = (*ProductStore)(nil)
