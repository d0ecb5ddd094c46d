package allocation

import (
	"sort"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/shopspring/decimal"
)

// BreakdownEntry is one position of an allocation joined with its
// instrument metadata
type BreakdownEntry struct {
	Ticker     domain.Ticker       `json:"ticker"`
	Weight     float64             `json:"weight"`
	WeightPct  float64             `json:"weight_pct"`
	Instrument universe.Instrument `json:"instrument"`
}

// CategoryTotal is the combined weight of a category
type CategoryTotal struct {
	Category universe.Category `json:"category"`
	Weight   float64           `json:"weight"`
}

// Breakdown is the display-ready view of an allocation
type Breakdown struct {
	Entries    []BreakdownEntry `json:"entries"`
	Categories []CategoryTotal  `json:"categories"`
}

// Breakdown validates the allocation and lists its positions by descending
// weight, ties broken by ticker. Zero-weight positions are omitted.
func (c *Composer) Breakdown(a domain.Allocation) (Breakdown, error) {
	if err := c.validator.Validate(a); err != nil {
		return Breakdown{}, err
	}

	hundred := decimal.NewFromInt(100)
	entries := make([]BreakdownEntry, 0, len(a))
	byCategory := make(map[universe.Category]decimal.Decimal)
	for _, t := range a.Tickers() {
		w := a[t]
		if w == 0 {
			continue
		}
		inst, err := c.universe.Lookup(t)
		if err != nil {
			return Breakdown{}, err
		}
		dw := decimal.NewFromFloat(w)
		entries = append(entries, BreakdownEntry{
			Ticker:     t,
			Weight:     w,
			WeightPct:  dw.Mul(hundred).Round(2).InexactFloat64(),
			Instrument: inst,
		})
		byCategory[inst.Category] = byCategory[inst.Category].Add(dw)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Ticker < entries[j].Ticker
	})

	categories := make([]CategoryTotal, 0, len(byCategory))
	for _, cat := range universe.Categories() {
		if w, ok := byCategory[cat]; ok {
			categories = append(categories, CategoryTotal{Category: cat, Weight: w.InexactFloat64()})
		}
	}

	return Breakdown{Entries: entries, Categories: categories}, nil
}
