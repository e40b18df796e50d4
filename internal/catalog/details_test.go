package catalog

import (
	"testing"

	"recsys-export-lab/internal/domain"
)

func TestExtractDemographics_GenderMapping(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Nữ", "female"},
		{"Nam", "male"},
		{"Unisex", "unisex"},
		{"Other", domain.Unknown},
		{"", domain.Unknown},
	}

	for _, tt := range tests {
		details := []domain.ProductDetail{{CategoryName: "Gender", Value: tt.label}}
		tags := ExtractDemographics(details)
		if tags.Gender != tt.want {
			t.Errorf("Gender %q: expected %s, got %s", tt.label, tt.want, tags.Gender)
		}
	}
}

func TestExtractDemographics_JoinsMultiValues(t *testing.T) {
	details := []domain.ProductDetail{
		{CategoryName: "Style", Values: []string{"Casual", "Street"}},
		{CategoryName: "Season", Values: []string{"Summer"}},
		{CategoryName: "Season", Value: "Autumn"},
	}

	tags := ExtractDemographics(details)

	if tags.Style != "Casual|Street" {
		t.Errorf("Expected Casual|Street, got %s", tags.Style)
	}
	// Values accumulate across sub-documents of the same group.
	if tags.Seasons != "Summer|Autumn" {
		t.Errorf("Expected Summer|Autumn, got %s", tags.Seasons)
	}
}

func TestExtractDemographics_ValuesPreferredOverValue(t *testing.T) {
	details := []domain.ProductDetail{
		{CategoryName: "Origin", Values: []string{"Vietnam"}, Value: "Ignored"},
	}

	tags := ExtractDemographics(details)

	if tags.Origin != "Vietnam" {
		t.Errorf("Expected Vietnam, got %s", tags.Origin)
	}
}

func TestExtractDemographics_EmptyGroupsAreUnknown(t *testing.T) {
	tags := ExtractDemographics(nil)

	for name, got := range map[string]string{
		"gender": tags.Gender,
		"brand":  tags.Brand,
		"origin": tags.Origin,
		"style":  tags.Style,
		"season": tags.Seasons,
	} {
		if got != domain.Unknown {
			t.Errorf("Expected %s for empty %s group, got %s", domain.Unknown, name, got)
		}
	}
}

func TestExtractDemographics_IgnoresUnrelatedGroups(t *testing.T) {
	details := []domain.ProductDetail{
		{CategoryName: "Material", Value: "Cotton"},
		{CategoryName: "Brand", Value: "Acme"},
	}

	tags := ExtractDemographics(details)

	if tags.Brand != "Acme" {
		t.Errorf("Expected Acme, got %s", tags.Brand)
	}
	if tags.Style != domain.Unknown {
		t.Errorf("Expected unrelated group ignored, got style %s", tags.Style)
	}
}

func TestLowerStrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hà Nội ", "hà nội"},
		{"CASUAL|Street", "casual|street"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := LowerStrip(tt.in); got != tt.want {
			t.Errorf("LowerStrip(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
