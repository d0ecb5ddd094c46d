// Package allocation builds, validates and normalizes allocations.
package allocation

import (
	"fmt"
	"math"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Validator enforces the allocation invariants: known tickers, finite
// non-negative weights, and a weight sum within tolerance of 1
type Validator struct {
	universe  *universe.Universe
	tolerance decimal.Decimal
	tol       float64
}

// NewValidator creates a validator. A non-positive tolerance falls back to
// domain.DefaultSumTolerance.
func NewValidator(u *universe.Universe, tolerance float64) *Validator {
	if tolerance <= 0 || math.IsNaN(tolerance) || math.IsInf(tolerance, 0) {
		tolerance = domain.DefaultSumTolerance
	}
	return &Validator{
		universe:  u,
		tolerance: decimal.NewFromFloat(tolerance),
		tol:       tolerance,
	}
}

// Tolerance returns the accepted deviation of the weight sum from 1
func (v *Validator) Tolerance() float64 {
	return v.tol
}

// Validate checks, in order, tickers, weights and the sum, and returns the
// first failure: domain.UnknownTickerError, domain.InvalidWeightError or
// domain.AllocationSumError
func (v *Validator) Validate(a domain.Allocation) error {
	if err := v.validateEntries(a); err != nil {
		return err
	}
	return v.checkSum(a)
}

// ValidateAll reports every problem instead of stopping at the first one.
// The sum is only checked when every weight is a finite number.
func (v *Validator) ValidateAll(a domain.Allocation) []error {
	var errs []error
	for _, t := range a.Tickers() {
		if !v.universe.Contains(t) {
			errs = append(errs, domain.UnknownTickerError{Ticker: t})
		}
	}
	finite := true
	for _, t := range a.Tickers() {
		if err := checkWeight(t, a[t]); err != nil {
			errs = append(errs, err)
			if math.IsNaN(a[t]) || math.IsInf(a[t], 0) {
				finite = false
			}
		}
	}
	if finite {
		if err := v.checkSum(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// validateEntries runs the ticker and weight checks
func (v *Validator) validateEntries(a domain.Allocation) error {
	tickers := a.Tickers()
	for _, t := range tickers {
		if !v.universe.Contains(t) {
			return domain.UnknownTickerError{Ticker: t}
		}
	}
	for _, t := range tickers {
		if err := checkWeight(t, a[t]); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) checkSum(a domain.Allocation) error {
	sum := a.Sum()
	if sum.Sub(one).Abs().GreaterThan(v.tolerance) {
		return domain.AllocationSumError{
			ActualSum:   sum.InexactFloat64(),
			ExpectedSum: 1,
			Tolerance:   v.tol,
		}
	}
	return nil
}

func checkWeight(t domain.Ticker, w float64) error {
	switch {
	case math.IsNaN(w):
		return domain.InvalidWeightError{Ticker: t, Weight: w, Reason: "weight is not a number"}
	case math.IsInf(w, 0):
		return domain.InvalidWeightError{Ticker: t, Weight: w, Reason: "weight is infinite"}
	case w < 0:
		return domain.InvalidWeightError{Ticker: t, Weight: w, Reason: fmt.Sprintf("weight %g is negative", w)}
	}
	return nil
}
