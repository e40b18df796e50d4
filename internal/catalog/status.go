package catalog

import (
	"recsys-export-lab/internal/domain"
)

// ShopSet is an immutable snapshot of shop IDs allowed to sell, computed
// once per pipeline run.
type ShopSet map[string]struct{}

// NewShopSet builds a ShopSet from a list of active shop IDs.
func NewShopSet(ids []string) ShopSet {
	set := make(ShopSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether the shop ID is in the set.
func (s ShopSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// ResolveStatus classifies a product into a lifecycle status.
// First match wins:
//  1. soft-deleted -> deleted
//  2. shop not active -> unavailable
//  3. approved, sellable, in stock -> active
//  4. draft approval -> draft
//  5. otherwise -> unavailable
func ResolveStatus(p *domain.RawProduct, activeShops ShopSet) domain.ProductStatus {
	if p.DeletedAt != nil {
		return domain.StatusDeleted
	}
	if !activeShops.Contains(p.ShopID) {
		return domain.StatusUnavailable
	}
	if p.IsApproved == domain.ApprovalApproved && p.AllowToSell && !p.IsSoldOut {
		return domain.StatusActive
	}
	if p.IsApproved == domain.ApprovalDraft {
		return domain.StatusDraft
	}
	return domain.StatusUnavailable
}
