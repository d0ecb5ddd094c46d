// Package comparison evaluates candidate portfolios side by side and ranks
// them.
package comparison

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/diversification"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/performance"
	"github.com/rs/zerolog"
)

// RankKey selects the metric candidates are ranked by
type RankKey string

const (
	RankBySharpe           RankKey = "sharpe"
	RankByAnnualizedReturn RankKey = "annualized_return"
	RankByTotalReturn      RankKey = "total_return"
	RankByVolatility       RankKey = "volatility"
	RankByMaxDrawdown      RankKey = "max_drawdown"
	RankByDiversification  RankKey = "diversification"
)

// Error codes that are not engine error codes
const (
	CodeDuplicateName = "duplicate_name"
	CodeMissingName   = "missing_name"
)

// RankKeys lists the supported keys, default first
func RankKeys() []RankKey {
	return []RankKey{
		RankBySharpe,
		RankByAnnualizedReturn,
		RankByTotalReturn,
		RankByVolatility,
		RankByMaxDrawdown,
		RankByDiversification,
	}
}

// Valid reports whether k is a supported rank key
func (k RankKey) Valid() bool {
	for _, known := range RankKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// Candidate is a named allocation with its historical value series
type Candidate struct {
	Name       string            `json:"name"`
	Allocation domain.Allocation `json:"allocation"`
	Values     []float64         `json:"values"`
}

// Options tune a comparison
type Options struct {
	RankBy         RankKey  `json:"rank_by,omitempty"`
	PeriodsPerYear int      `json:"periods_per_year"`
	RiskFreeRate   *float64 `json:"risk_free_rate,omitempty"`
}

// Entry is a ranked candidate
type Entry struct {
	Rank            int                    `json:"rank"`
	Name            string                 `json:"name"`
	Metrics         performance.Metrics    `json:"metrics"`
	Diversification diversification.Report `json:"diversification"`
}

// CandidateError records why a candidate was left out of the ranking
type CandidateError struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Comparison is the outcome of compare
type Comparison struct {
	RankBy RankKey          `json:"rank_by"`
	Ranked []Entry          `json:"ranked"`
	Errors []CandidateError `json:"errors"`
}

// Comparator ranks candidates. A failing candidate never aborts the batch.
type Comparator struct {
	calculator *performance.Calculator
	analyzer   *diversification.Analyzer
	log        zerolog.Logger
}

// NewComparator creates a comparator. The analyzer validates allocations.
func NewComparator(calc *performance.Calculator, analyzer *diversification.Analyzer, log zerolog.Logger) *Comparator {
	return &Comparator{
		calculator: calc,
		analyzer:   analyzer,
		log:        log.With().Str("component", "portfolio_comparator").Logger(),
	}
}

// Compare evaluates every candidate and ranks the successful ones.
// Ties on the rank key are broken by lower max drawdown, then by name.
func (c *Comparator) Compare(candidates []Candidate, opts Options) (Comparison, error) {
	key := opts.RankBy
	if key == "" {
		key = RankBySharpe
	}
	key = RankKey(strings.ToLower(string(key)))
	if !key.Valid() {
		return Comparison{}, domain.ValidationError{Field: "rank_by", Value: string(opts.RankBy), Message: "unsupported rank key"}
	}
	if opts.PeriodsPerYear <= 0 {
		return Comparison{}, domain.ValidationError{Field: "periods_per_year", Value: fmt.Sprint(opts.PeriodsPerYear), Message: "must be a positive integer"}
	}

	result := Comparison{
		RankBy: key,
		Ranked: make([]Entry, 0, len(candidates)),
		Errors: make([]CandidateError, 0),
	}

	seen := make(map[string]bool, len(candidates))
	for i, cand := range candidates {
		name := strings.TrimSpace(cand.Name)
		if name == "" {
			result.Errors = append(result.Errors, CandidateError{Index: i, Code: CodeMissingName, Message: "candidate name is required"})
			continue
		}
		if seen[name] {
			result.Errors = append(result.Errors, CandidateError{Index: i, Name: name, Code: CodeDuplicateName, Message: fmt.Sprintf("candidate %q appears more than once", name)})
			continue
		}
		seen[name] = true

		entry, err := c.evaluate(name, cand, opts)
		if err != nil {
			result.Errors = append(result.Errors, CandidateError{Index: i, Name: name, Code: codeOf(err), Message: err.Error()})
			continue
		}
		result.Ranked = append(result.Ranked, entry)
	}

	sort.SliceStable(result.Ranked, func(i, j int) bool {
		return less(key, result.Ranked[i], result.Ranked[j])
	})
	for i := range result.Ranked {
		result.Ranked[i].Rank = i + 1
	}

	c.log.Debug().
		Str("rank_by", string(key)).
		Int("ranked", len(result.Ranked)).
		Int("errored", len(result.Errors)).
		Msg("Compared portfolios")

	return result, nil
}

func (c *Comparator) evaluate(name string, cand Candidate, opts Options) (Entry, error) {
	report, err := c.analyzer.Analyze(cand.Allocation)
	if err != nil {
		return Entry{}, err
	}
	metrics, err := c.calculator.Compute(cand.Values, opts.PeriodsPerYear, opts.RiskFreeRate)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Metrics: metrics, Diversification: report}, nil
}

// score returns the rank value, higher is better, and whether it is defined
func score(key RankKey, e Entry) (float64, bool) {
	switch key {
	case RankByAnnualizedReturn:
		return e.Metrics.AnnualizedReturn, true
	case RankByTotalReturn:
		return e.Metrics.TotalReturn, true
	case RankByVolatility:
		return -e.Metrics.Volatility, true
	case RankByMaxDrawdown:
		return -e.Metrics.MaxDrawdown, true
	case RankByDiversification:
		return e.Diversification.Score, true
	default:
		if e.Metrics.Sharpe == nil {
			return math.Inf(-1), false
		}
		return *e.Metrics.Sharpe, true
	}
}

func less(key RankKey, a, b Entry) bool {
	sa, okA := score(key, a)
	sb, okB := score(key, b)
	if okA != okB {
		// Undefined values rank last
		return okA
	}
	if okA && sa != sb {
		return sa > sb
	}
	if a.Metrics.MaxDrawdown != b.Metrics.MaxDrawdown {
		return a.Metrics.MaxDrawdown < b.Metrics.MaxDrawdown
	}
	return a.Name < b.Name
}

func codeOf(err error) string {
	var coded domain.Coded
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return domain.CodeValidation
}
