// Package universe provides the fixed instrument universe and its metadata.
package universe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
)

var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.]{0,9}$`)

// NormalizeTicker trims and upper-cases user input
func NormalizeTicker(s string) domain.Ticker {
	return domain.Ticker(strings.ToUpper(strings.TrimSpace(s)))
}

// Universe is the closed, immutable set of tradable instruments.
// It is built once from the catalog and only read afterwards.
type Universe struct {
	instruments map[domain.Ticker]Instrument
	order       []domain.Ticker
}

// New validates the instruments and builds the universe.
// Catalog order is preserved for listings.
func New(instruments []Instrument) (*Universe, error) {
	if len(instruments) == 0 {
		return nil, domain.ValidationError{Field: "instruments", Message: "universe must contain at least one instrument"}
	}

	var errs domain.ValidationErrors
	u := &Universe{
		instruments: make(map[domain.Ticker]Instrument, len(instruments)),
		order:       make([]domain.Ticker, 0, len(instruments)),
	}

	for i, inst := range instruments {
		field := fmt.Sprintf("instruments[%d]", i)
		if !tickerPattern.MatchString(string(inst.Ticker)) {
			errs = append(errs, domain.ValidationError{Field: field + ".ticker", Value: string(inst.Ticker), Message: "must be an upper-case ticker symbol"})
			continue
		}
		if _, dup := u.instruments[inst.Ticker]; dup {
			errs = append(errs, domain.ValidationError{Field: field + ".ticker", Value: string(inst.Ticker), Message: "duplicate ticker"})
			continue
		}
		if !inst.Category.Valid() {
			errs = append(errs, domain.ValidationError{Field: field + ".category", Value: string(inst.Category), Message: "unknown category"})
		}
		if !inst.RiskLevel.Valid() {
			errs = append(errs, domain.ValidationError{Field: field + ".risk_level", Value: string(inst.RiskLevel), Message: "unknown risk level"})
		}
		u.instruments[inst.Ticker] = inst
		u.order = append(u.order, inst.Ticker)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return u, nil
}

// Size returns the number of instruments
func (u *Universe) Size() int {
	return len(u.order)
}

// Contains reports whether ticker belongs to the universe
func (u *Universe) Contains(ticker domain.Ticker) bool {
	_, ok := u.instruments[ticker]
	return ok
}

// Lookup returns the instrument for ticker or an UnknownTickerError
func (u *Universe) Lookup(ticker domain.Ticker) (Instrument, error) {
	inst, ok := u.instruments[ticker]
	if !ok {
		return Instrument{}, domain.UnknownTickerError{Ticker: ticker}
	}
	return inst, nil
}

// CategoryOf returns the category of ticker, or "" when unknown
func (u *Universe) CategoryOf(ticker domain.Ticker) Category {
	return u.instruments[ticker].Category
}

// Tickers returns the supported tickers in catalog order
func (u *Universe) Tickers() []domain.Ticker {
	out := make([]domain.Ticker, len(u.order))
	copy(out, u.order)
	return out
}

// All returns every instrument in catalog order
func (u *Universe) All() []Instrument {
	return u.filter(func(Instrument) bool { return true })
}

// ByCategory returns the instruments of one category
func (u *Universe) ByCategory(c Category) []Instrument {
	return u.filter(func(inst Instrument) bool {
		return strings.EqualFold(string(inst.Category), string(c))
	})
}

// ByRiskLevel returns the instruments with the given risk level
func (u *Universe) ByRiskLevel(r RiskLevel) []Instrument {
	return u.filter(func(inst Instrument) bool {
		return strings.EqualFold(string(inst.RiskLevel), string(r))
	})
}

func (u *Universe) filter(keep func(Instrument) bool) []Instrument {
	out := make([]Instrument, 0, len(u.order))
	for _, t := range u.order {
		if inst := u.instruments[t]; keep(inst) {
			out = append(out, inst)
		}
	}
	return out
}
