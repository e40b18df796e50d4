package memory

import (
	"context"
	"sort"
	"sync"

	"recsys-export-lab/internal/storage"
)

// shopRow holds the activity state of one shop.
type shopRow struct {
	approved  bool
	pauseMode bool
}

// ShopStore is an in-memory implementation of storage.ShopStore.
type ShopStore struct {
	mu   sync.RWMutex
	data map[string]shopRow
}

// NewShopStore creates a new in-memory shop store.
func NewShopStore() *ShopStore {
	return &ShopStore{
		data: make(map[string]shopRow),
	}
}

// Insert adds a shop. Returns ErrDuplicateKey if the ID exists.
func (s *ShopStore) Insert(_ context.Context, id string, approved, pauseMode bool) error {
	if id == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[id] = shopRow{approved: approved, pauseMode: pauseMode}
	return nil
}

// GetActiveIDs retrieves the IDs of shops that are approved and not paused,
// ordered ASC.
func (s *ShopStore) GetActiveIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, row := range s.data {
		if row.approved && !row.pauseMode {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

var _ storage.ShopStore = (*ShopStore)(nil)
