package catalog

import (
	"recsys-export-lab/internal/domain"
)

// FeatureExtractor assembles flat ProductRecords from raw catalog rows.
// The category index and active-shop set are immutable snapshots shared
// across all calls of a pipeline run.
type FeatureExtractor struct {
	categories  *Index
	activeShops ShopSet
}

// NewFeatureExtractor creates a FeatureExtractor over taxonomy and shop
// snapshots.
func NewFeatureExtractor(categories *Index, activeShops ShopSet) *FeatureExtractor {
	return &FeatureExtractor{categories: categories, activeShops: activeShops}
}

// Extract builds the training record for a single catalog row.
func (e *FeatureExtractor) Extract(p *domain.RawProduct) *domain.ProductRecord {
	tags := ExtractDemographics(p.Details)
	prices := AggregatePrices(p.Variants, p.BeforeSalePrice)

	record := &domain.ProductRecord{
		ItemID:            p.ID,
		Status:            ResolveStatus(p, e.activeShops),
		Gender:            LowerStrip(tags.Gender),
		Origin:            LowerStrip(tags.Origin),
		Style:             LowerStrip(tags.Style),
		Seasons:           LowerStrip(tags.Seasons),
		PriceMin:          prices.Min,
		PriceMax:          prices.Max,
		CreationTimestamp: p.CreatedAt,
	}

	// The product's ordered category-id list positions level N at index N-1.
	for level := 1; level <= domain.MaxCategoryLevels; level++ {
		record.Categories[level-1] = LowerStrip(e.categoryNameAt(p.CategoryIDs, level-1))
	}

	return record
}

func (e *FeatureExtractor) categoryNameAt(categoryIDs []string, index int) string {
	if index >= len(categoryIDs) || categoryIDs[index] == "" {
		return domain.Unknown
	}
	return e.categories.NameByID(categoryIDs[index])
}
