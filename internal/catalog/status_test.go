package catalog

import (
	"testing"

	"recsys-export-lab/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func activeProduct() *domain.RawProduct {
	return &domain.RawProduct{
		ID:          "p1",
		ShopID:      "shop-1",
		IsApproved:  domain.ApprovalApproved,
		AllowToSell: true,
	}
}

func TestResolveStatus(t *testing.T) {
	shops := NewShopSet([]string{"shop-1"})

	tests := []struct {
		name   string
		mutate func(*domain.RawProduct)
		want   domain.ProductStatus
	}{
		{"active", func(p *domain.RawProduct) {}, domain.StatusActive},
		{"deleted wins over approved", func(p *domain.RawProduct) { p.DeletedAt = int64Ptr(1000) }, domain.StatusDeleted},
		{"inactive shop", func(p *domain.RawProduct) { p.ShopID = "shop-paused" }, domain.StatusUnavailable},
		{"draft approval", func(p *domain.RawProduct) { p.IsApproved = domain.ApprovalDraft }, domain.StatusDraft},
		{"sold out", func(p *domain.RawProduct) { p.IsSoldOut = true }, domain.StatusUnavailable},
		{"not sellable", func(p *domain.RawProduct) { p.AllowToSell = false }, domain.StatusUnavailable},
		{"pending approval", func(p *domain.RawProduct) { p.IsApproved = domain.ApprovalPending }, domain.StatusUnavailable},
		{"rejected approval", func(p *domain.RawProduct) { p.IsApproved = domain.ApprovalRejected }, domain.StatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := activeProduct()
			tt.mutate(p)
			if got := ResolveStatus(p, shops); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolveStatus_DeletedWinsOverInactiveShop(t *testing.T) {
	p := activeProduct()
	p.DeletedAt = int64Ptr(1000)
	p.ShopID = "shop-gone"

	if got := ResolveStatus(p, NewShopSet(nil)); got != domain.StatusDeleted {
		t.Errorf("Expected deleted, got %s", got)
	}
}

func TestResolveStatus_DraftSoldOutStaysDraft(t *testing.T) {
	// Draft approval takes precedence over the sold-out fallthrough.
	p := activeProduct()
	p.IsApproved = domain.ApprovalDraft
	p.IsSoldOut = true

	if got := ResolveStatus(p, NewShopSet([]string{"shop-1"})); got != domain.StatusDraft {
		t.Errorf("Expected draft, got %s", got)
	}
}

func TestShopSet_Contains(t *testing.T) {
	set := NewShopSet([]string{"a", "b"})

	if !set.Contains("a") || !set.Contains("b") {
		t.Error("Expected members to be contained")
	}
	if set.Contains("c") {
		t.Error("Expected c to be absent")
	}
}
