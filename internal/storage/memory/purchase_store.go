package memory

import (
	"context"
	"sort"
	"sync"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// PurchaseStore is an in-memory implementation of storage.PurchaseStore.
type PurchaseStore struct {
	mu   sync.RWMutex
	data map[string]*domain.RawPurchaseContext // keyed by order item ID
}

// NewPurchaseStore creates a new in-memory purchase store.
func NewPurchaseStore() *PurchaseStore {
	return &PurchaseStore{
		data: make(map[string]*domain.RawPurchaseContext),
	}
}

// Insert adds a purchase snapshot. Returns ErrDuplicateKey if the order
// item ID exists.
func (s *PurchaseStore) Insert(_ context.Context, p *domain.RawPurchaseContext) error {
	if p == nil || p.OrderItemID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.OrderItemID]; exists {
		return storage.ErrDuplicateKey
	}
	c := *p
	s.data[p.OrderItemID] = &c
	return nil
}

// GetAll retrieves every purchase snapshot, ordered by (created_at, order_item_id) ASC.
func (s *PurchaseStore) GetAll(_ context.Context) ([]*domain.RawPurchaseContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.RawPurchaseContext, 0, len(s.data))
	for _, p := range s.data {
		c := *p
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt < result[j].CreatedAt
		}
		return result[i].OrderItemID < result[j].OrderItemID
	})

	return result, nil
}

var _ storage.PurchaseStore = (*PurchaseStore)(nil)
