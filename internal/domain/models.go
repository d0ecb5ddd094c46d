// Package domain provides core domain models and types.
package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MinScore and MaxScore bound every questionnaire total.
const (
	MinScore = 0
	MaxScore = 50
)

// DefaultSumTolerance is the allowed deviation of an allocation's weight sum from 1.
const DefaultSumTolerance = 1e-3

// Ticker identifies a tradable instrument of the universe
type Ticker string

// RiskBucket represents one of the five ordered risk-tolerance classes
type RiskBucket int

const (
	// BucketConservative prioritises capital preservation
	BucketConservative RiskBucket = iota
	// BucketModerate balances safety and modest growth
	BucketModerate
	// BucketBalanced splits evenly between risk and return
	BucketBalanced
	// BucketGrowth targets long-term growth
	BucketGrowth
	// BucketAggressive seeks maximum growth and tolerates high volatility
	BucketAggressive
)

// BucketCount is the number of risk buckets
const BucketCount = 5

// Valid reports whether b is one of the five known buckets
func (b RiskBucket) Valid() bool {
	return b >= BucketConservative && b <= BucketAggressive
}

// AllBuckets returns the buckets in ascending order
func AllBuckets() []RiskBucket {
	return []RiskBucket{
		BucketConservative,
		BucketModerate,
		BucketBalanced,
		BucketGrowth,
		BucketAggressive,
	}
}

// Allocation maps tickers to portfolio weights (fractions of 1)
type Allocation map[Ticker]float64

// Clone returns an independent copy of the allocation
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for t, w := range a {
		out[t] = w
	}
	return out
}

// Tickers returns the allocation keys in lexical order
func (a Allocation) Tickers() []Ticker {
	tickers := make([]Ticker, 0, len(a))
	for t := range a {
		tickers = append(tickers, t)
	}
	sort.Slice(tickers, func(i, j int) bool { return tickers[i] < tickers[j] })
	return tickers
}

// Sum adds the weights exactly, so 0.5+0.3+0.17 is reported as 0.97 rather
// than 0.9700000000000001. Weights must be finite.
func (a Allocation) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, t := range a.Tickers() {
		total = total.Add(decimal.NewFromFloat(a[t]))
	}
	return total
}

// NonZero returns the number of positions with a positive weight
func (a Allocation) NonZero() int {
	n := 0
	for _, w := range a {
		if w > 0 {
			n++
		}
	}
	return n
}
