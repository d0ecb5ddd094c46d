package universe

import (
	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
)

// Category groups instruments for concentration analysis
type Category string

// Known instrument categories
const (
	CategoryCash        Category = "cash"
	CategoryBonds       Category = "bonds"
	CategoryEquities    Category = "equities"
	CategoryRealEstate  Category = "real_estate"
	CategoryCommodities Category = "commodities"
)

// Categories returns every known category in display order
func Categories() []Category {
	return []Category{
		CategoryCash,
		CategoryBonds,
		CategoryEquities,
		CategoryRealEstate,
		CategoryCommodities,
	}
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// RiskLevel is the static risk rating shown next to an instrument
type RiskLevel string

// Known risk levels, from safest to riskiest
const (
	RiskLow        RiskLevel = "low"
	RiskMedium     RiskLevel = "medium"
	RiskMediumHigh RiskLevel = "medium_high"
	RiskHigh       RiskLevel = "high"
)

// Valid reports whether r is a known risk level
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskMediumHigh, RiskHigh:
		return true
	}
	return false
}

// Instrument represents a tradable instrument of the universe with its
// static descriptive metadata. AssetClass is the display name of the
// category and ExpectedReturn an annual band as text ("3-5%", "Variable").
type Instrument struct {
	Ticker         domain.Ticker `json:"ticker"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Category       Category      `json:"category"`
	AssetClass     string        `json:"asset_class"`
	RiskLevel      RiskLevel     `json:"risk_level"`
	ExpectedReturn string        `json:"expected_return"`
	Color          string        `json:"color"`
}
