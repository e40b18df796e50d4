package catalog

import (
	"strings"

	"recsys-export-lab/internal/domain"
)

// Demographic attribute group names as they appear on product detail
// sub-documents.
const (
	detailGender = "Gender"
	detailBrand  = "Brand"
	detailOrigin = "Origin"
	detailStyle  = "Style"
	detailSeason = "Season"
)

// DemographicTags holds the demographic attribute values extracted from a
// product's detail sub-documents. Empty groups hold Unknown.
type DemographicTags struct {
	Gender  string
	Brand   string
	Origin  string
	Style   string
	Seasons string
}

// ExtractDemographics collects demographic attribute values from product
// detail sub-documents, grouped by attribute group name. Multi-valued
// groups are joined with "|". The localized gender labels are mapped to
// canonical female/male/unisex.
func ExtractDemographics(details []domain.ProductDetail) DemographicTags {
	collected := map[string][]string{}
	for _, d := range details {
		switch d.CategoryName {
		case detailGender, detailBrand, detailOrigin, detailStyle, detailSeason:
			collected[d.CategoryName] = append(collected[d.CategoryName], detailValues(d)...)
		}
	}

	return DemographicTags{
		Gender:  canonicalGender(joinValues(collected[detailGender])),
		Brand:   joinValues(collected[detailBrand]),
		Origin:  joinValues(collected[detailOrigin]),
		Style:   joinValues(collected[detailStyle]),
		Seasons: joinValues(collected[detailSeason]),
	}
}

// detailValues returns the non-empty values of a detail sub-document,
// preferring the multi-valued field over the single value.
func detailValues(d domain.ProductDetail) []string {
	if len(d.Values) > 0 {
		var vals []string
		for _, v := range d.Values {
			if v != "" {
				vals = append(vals, v)
			}
		}
		return vals
	}
	if d.Value != "" {
		return []string{d.Value}
	}
	return nil
}

func joinValues(values []string) string {
	if len(values) == 0 {
		return domain.Unknown
	}
	return strings.Join(values, "|")
}

// canonicalGender maps the seller-facing gender labels to dataset values.
func canonicalGender(label string) string {
	switch label {
	case "Nữ":
		return "female"
	case "Nam":
		return "male"
	case "Unisex":
		return "unisex"
	}
	return domain.Unknown
}

// LowerStrip normalizes a dataset string value: trimmed and lowercased.
func LowerStrip(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
