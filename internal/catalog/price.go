package catalog

import (
	"recsys-export-lab/internal/domain"
)

// AggregatePrices computes the min/max list price over a product's variants
// in a single scan, ignoring nil and non-positive values. When no variant
// carries a usable price the product's own list price is used for both
// bounds; both bounds stay nil when no signal exists anywhere.
func AggregatePrices(variants []domain.Variant, productPrice *float64) domain.PriceRange {
	var min, max *float64

	for _, v := range variants {
		for _, p := range [2]*float64{v.BeforeSalePrice, v.SalePrice} {
			if !usablePrice(p) {
				continue
			}
			if min == nil || *p < *min {
				min = copyPrice(p)
			}
			if max == nil || *p > *max {
				max = copyPrice(p)
			}
		}
	}

	if min == nil && usablePrice(productPrice) {
		min = copyPrice(productPrice)
		max = copyPrice(productPrice)
	}

	return domain.PriceRange{Min: min, Max: max}
}

func usablePrice(p *float64) bool {
	return p != nil && *p > 0
}

func copyPrice(p *float64) *float64 {
	v := *p
	return &v
}
