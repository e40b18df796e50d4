package memory

import (
	"context"
	"sort"
	"sync"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// feedbackEntry pairs a review with its target entity kind.
type feedbackEntry struct {
	record     domain.RawReviewRecord
	targetType string
}

// FeedbackStore is an in-memory implementation of storage.FeedbackStore.
type FeedbackStore struct {
	mu      sync.RWMutex
	entries []feedbackEntry
}

// NewFeedbackStore creates a new in-memory feedback store.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{}
}

// Insert adds a review record for a target entity kind.
func (s *FeedbackStore) Insert(_ context.Context, r *domain.RawReviewRecord, targetType string) error {
	if r == nil || r.TargetID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, feedbackEntry{record: *r, targetType: targetType})
	return nil
}

// GetByTargetType retrieves reviews for a target entity kind, ordered by
// (created_at, user_id) ASC.
func (s *FeedbackStore) GetByTargetType(_ context.Context, targetType string) ([]*domain.RawReviewRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.RawReviewRecord
	for _, e := range s.entries {
		if e.targetType != targetType {
			continue
		}
		c := e.record
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt < result[j].CreatedAt
		}
		return result[i].UserID < result[j].UserID
	})

	return result, nil
}

var _ storage.FeedbackStore = (*FeedbackStore)(nil)
