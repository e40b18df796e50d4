package catalog

import (
	"context"
	"fmt"
	"log"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// Runner loads catalog rows and produces the items dataset.
type Runner struct {
	productStore  storage.ProductStore
	shopStore     storage.ShopStore
	categoryStore storage.CategoryStore
	logger        *log.Logger
}

// NewRunner creates a catalog export runner.
func NewRunner(products storage.ProductStore, shops storage.ShopStore, categories storage.CategoryStore, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		productStore:  products,
		shopStore:     shops,
		categoryStore: categories,
		logger:        logger,
	}
}

// ExportResult carries counters from a catalog export.
type ExportResult struct {
	Processed int
	Emitted   int
	Skipped   int
}

// Export builds ProductRecords for up to limit catalog rows (0 = all).
// Taxonomy and shop snapshots are loaded once; a row that fails extraction
// is skipped and logged, never aborting the batch.
func (r *Runner) Export(ctx context.Context, limit int) ([]*domain.ProductRecord, *ExportResult, error) {
	flat, err := r.categoryStore.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load categories: %w", err)
	}
	// Round-trip through the tree assigns levels and canonical order.
	tree := BuildTree(flat, nil, 1)
	index := NewIndex(FlattenTree(tree))

	shopIDs, err := r.shopStore.GetActiveIDs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load active shops: %w", err)
	}
	activeShops := NewShopSet(shopIDs)

	products, err := r.productStore.GetForExport(ctx, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("load products: %w", err)
	}

	extractor := NewFeatureExtractor(index, activeShops)
	result := &ExportResult{Processed: len(products)}

	records := make([]*domain.ProductRecord, 0, len(products))
	for _, p := range products {
		if p == nil || p.ID == "" {
			result.Skipped++
			r.logger.Printf("[catalog] skipping product with empty ID")
			continue
		}
		records = append(records, extractor.Extract(p))
		result.Emitted++
	}

	return records, result, nil
}
