package allocation

import (
	"errors"
	"math"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/portfolio"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Source tells where a composed allocation came from
type Source string

const (
	SourceModel              Source = "model"
	SourceModelWithOverrides Source = "model_with_overrides"
	SourceCustom             Source = "custom"
)

// ComposeRequest selects a model portfolio, overrides some of its weights,
// or both. Overrides replace model weights ticker by ticker; a zero override
// removes the ticker.
type ComposeRequest struct {
	Bucket    *domain.RiskBucket `json:"bucket,omitempty"`
	Overrides domain.Allocation  `json:"overrides,omitempty"`
	Normalize bool               `json:"normalize,omitempty"`
}

// Composition is a validated allocation and how it was obtained
type Composition struct {
	Bucket     *domain.RiskBucket `json:"bucket,omitempty"`
	Source     Source             `json:"source"`
	Allocation domain.Allocation  `json:"allocation"`
	Normalized bool               `json:"normalized"`
}

// Composer builds final allocations from model portfolios and overrides
type Composer struct {
	validator *Validator
	catalog   *portfolio.Catalog
	universe  *universe.Universe
	log       zerolog.Logger
}

// NewComposer creates a composer
func NewComposer(v *Validator, catalog *portfolio.Catalog, u *universe.Universe, log zerolog.Logger) *Composer {
	return &Composer{
		validator: v,
		catalog:   catalog,
		universe:  u,
		log:       log.With().Str("component", "allocation_composer").Logger(),
	}
}

// Validator returns the validator used by the composer
func (c *Composer) Validator() *Validator {
	return c.validator
}

// Compose merges overrides over the bucket's model (or over an empty base)
// and validates the result. It never rescales weights unless the request
// asks for normalization.
func (c *Composer) Compose(req ComposeRequest) (Composition, error) {
	if req.Bucket == nil && len(req.Overrides) == 0 {
		return Composition{}, domain.ValidationError{Field: "bucket", Message: "a risk bucket or overrides are required"}
	}

	base := domain.Allocation{}
	source := SourceCustom
	if req.Bucket != nil {
		model, err := c.catalog.Model(*req.Bucket)
		if err != nil {
			return Composition{}, err
		}
		base = model
		source = SourceModel
		if len(req.Overrides) > 0 {
			source = SourceModelWithOverrides
		}
	}

	for t, w := range req.Overrides {
		base[t] = w
	}
	// Zero weights are dropped only once every ticker is known
	if err := c.validator.validateEntries(base); err != nil {
		return Composition{}, err
	}
	for t, w := range base {
		if w == 0 {
			delete(base, t)
		}
	}

	result := Composition{
		Bucket:     req.Bucket,
		Source:     source,
		Allocation: base,
	}

	if req.Normalize {
		normalized, err := c.Normalize(base)
		if err != nil {
			return Composition{}, err
		}
		result.Allocation = normalized
		result.Normalized = true
	} else if err := c.validator.Validate(base); err != nil {
		return Composition{}, err
	}

	c.log.Debug().
		Str("source", string(source)).
		Int("positions", len(result.Allocation)).
		Bool("normalized", result.Normalized).
		Msg("Composed allocation")

	return result, nil
}

// Normalize rescales an allocation so its weights sum to 1. Tickers and
// weights must be valid and the weights must not all be zero.
func (c *Composer) Normalize(a domain.Allocation) (domain.Allocation, error) {
	if err := c.validator.validateEntries(a); err != nil {
		return nil, err
	}
	sum := a.Sum()
	if !sum.IsPositive() {
		return nil, domain.AllocationSumError{ActualSum: 0, ExpectedSum: 1, Tolerance: c.validator.Tolerance()}
	}

	out := make(domain.Allocation, len(a))
	for t, w := range a {
		if w == 0 {
			continue
		}
		out[t] = decimal.NewFromFloat(w).DivRound(sum, 12).InexactFloat64()
	}
	if err := c.validator.Validate(out); err != nil {
		// Rounding cannot move a rescaled sum outside tolerance
		return nil, errors.Join(errors.New("normalization produced an invalid allocation"), err)
	}
	return out, nil
}

// Problem is one entry of a validation report
type Problem struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Ticker  domain.Ticker `json:"ticker,omitempty"`
}

// Report is the outcome of validate_allocation
type Report struct {
	Valid     bool      `json:"valid"`
	Errors    []Problem `json:"errors"`
	ActualSum *float64  `json:"actual_sum,omitempty"`
}

// ValidateAll reports every problem of an allocation
func (c *Composer) ValidateAll(a domain.Allocation) Report {
	errs := c.validator.ValidateAll(a)
	report := Report{Valid: len(errs) == 0, Errors: make([]Problem, 0, len(errs))}

	finite := true
	for _, err := range errs {
		p := Problem{Message: err.Error()}
		var unknown domain.UnknownTickerError
		var weight domain.InvalidWeightError
		var sum domain.AllocationSumError
		switch {
		case errors.As(err, &unknown):
			p.Code, p.Ticker = unknown.Code(), unknown.Ticker
		case errors.As(err, &weight):
			p.Code, p.Ticker = weight.Code(), weight.Ticker
			if math.IsNaN(weight.Weight) || math.IsInf(weight.Weight, 0) {
				finite = false
			}
		case errors.As(err, &sum):
			p.Code = sum.Code()
		default:
			p.Code = domain.CodeValidation
		}
		report.Errors = append(report.Errors, p)
	}

	if finite {
		s := a.Sum().InexactFloat64()
		report.ActualSum = &s
	}
	return report
}
