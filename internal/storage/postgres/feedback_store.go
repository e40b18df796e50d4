package postgres

import (
	"context"
	"fmt"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// FeedbackStore implements storage.FeedbackStore using PostgreSQL.
type FeedbackStore struct {
	pool *Pool
}

// NewFeedbackStore creates a new FeedbackStore.
func NewFeedbackStore(pool *Pool) *FeedbackStore {
	return &FeedbackStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FeedbackStore = (*FeedbackStore)(nil)

// Insert adds a review record for a target entity kind. Returns
// ErrDuplicateKey if (user_id, target_id, target_type) exists.
func (s *FeedbackStore) Insert(ctx context.Context, r *domain.RawReviewRecord, targetType string) error {
	if r == nil || r.TargetID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO feedbacks (
			user_id, target_id, target_type, shop_id, vote_star, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		r.UserID,
		r.TargetID,
		targetType,
		r.ShopID,
		r.VoteStar,
		r.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// GetByTargetType retrieves reviews for a target entity kind, ordered by
// (created_at, user_id) ASC.
func (s *FeedbackStore) GetByTargetType(ctx context.Context, targetType string) ([]*domain.RawReviewRecord, error) {
	query := `
		SELECT user_id, target_id, shop_id, vote_star, created_at
		FROM feedbacks
		WHERE target_type = $1
		ORDER BY created_at ASC, user_id ASC
	`

	rows, err := s.pool.Query(ctx, query, targetType)
	if err != nil {
		return nil, fmt.Errorf("get feedbacks by target type: %w", err)
	}
	defer rows.Close()

	var records []*domain.RawReviewRecord
	for rows.Next() {
		var r domain.RawReviewRecord
		err := rows.Scan(
			&r.UserID,
			&r.TargetID,
			&r.ShopID,
			&r.VoteStar,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedbacks: %w", err)
	}
	return records, nil
}
