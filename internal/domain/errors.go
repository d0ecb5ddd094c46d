package domain

import (
	"fmt"
	"strings"
)

// Error codes exposed to callers
const (
	CodeValidation       = "validation_error"
	CodeUnknownTicker    = "unknown_ticker"
	CodeInvalidWeight    = "invalid_weight"
	CodeAllocationSum    = "allocation_sum"
	CodeInsufficientData = "insufficient_data"
	CodeDegenerateMetric = "degenerate_metric"
)

// Coded is implemented by every engine error
type Coded interface {
	error
	Code() string
}

// ValidationError represents a malformed, missing or out-of-range input field
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Code returns the stable error code
func (e ValidationError) Code() string { return CodeValidation }

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Code returns the stable error code
func (e ValidationErrors) Code() string { return CodeValidation }

// Fields lists the offending field names in order
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, err := range e {
		fields = append(fields, err.Field)
	}
	return fields
}

// UnknownTickerError is returned when an allocation references an instrument
// outside the universe
type UnknownTickerError struct {
	Ticker Ticker `json:"ticker"`
}

func (e UnknownTickerError) Error() string {
	return fmt.Sprintf("unknown ticker %q", string(e.Ticker))
}

// Code returns the stable error code
func (e UnknownTickerError) Code() string { return CodeUnknownTicker }

// InvalidWeightError is returned for negative or non-finite weights
type InvalidWeightError struct {
	Ticker Ticker  `json:"ticker"`
	Weight float64 `json:"weight"`
	Reason string  `json:"reason"`
}

func (e InvalidWeightError) Error() string {
	return fmt.Sprintf("invalid weight for %s: %s", e.Ticker, e.Reason)
}

// Code returns the stable error code
func (e InvalidWeightError) Code() string { return CodeInvalidWeight }

// AllocationSumError is returned when weights do not sum to 1 within tolerance
type AllocationSumError struct {
	ActualSum   float64 `json:"actual_sum"`
	ExpectedSum float64 `json:"expected_sum"`
	Tolerance   float64 `json:"tolerance"`
}

func (e AllocationSumError) Error() string {
	return fmt.Sprintf("allocation weights sum to %g, expected %g (tolerance %g)",
		e.ActualSum, e.ExpectedSum, e.Tolerance)
}

// Code returns the stable error code
func (e AllocationSumError) Code() string { return CodeAllocationSum }

// InsufficientDataError is returned when a series is too short for a metric
type InsufficientDataError struct {
	Points   int `json:"points"`
	Required int `json:"required"`
}

func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: got %d points, need at least %d", e.Points, e.Required)
}

// Code returns the stable error code
func (e InsufficientDataError) Code() string { return CodeInsufficientData }

// DegenerateMetricError marks a metric that is undefined for the given input.
// Undefined ratios are reported alongside results; a return or volatility
// that cannot be represented fails the computation.
type DegenerateMetricError struct {
	Metric string `json:"metric"`
	Reason string `json:"reason"`
}

func (e DegenerateMetricError) Error() string {
	return fmt.Sprintf("%s is undefined: %s", e.Metric, e.Reason)
}

// Code returns the stable error code
func (e DegenerateMetricError) Code() string { return CodeDegenerateMetric }
