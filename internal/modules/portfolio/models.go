// Package portfolio provides the model portfolio catalog: one immutable
// target allocation per risk bucket.
package portfolio

import (
	"fmt"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
)

// Validator checks an allocation against the universe and the sum tolerance
type Validator interface {
	Validate(a domain.Allocation) error
}

// Model is the target allocation of one risk bucket
type Model struct {
	Bucket     domain.RiskBucket `json:"bucket"`
	Allocation domain.Allocation `json:"allocation"`
}

// Catalog holds the model portfolios. It is built once at start-up and
// never mutated; every lookup returns a copy.
type Catalog struct {
	models map[domain.RiskBucket]domain.Allocation
}

// NewCatalog validates one model per bucket and builds the catalog
func NewCatalog(models []Model, v Validator) (*Catalog, error) {
	c := &Catalog{models: make(map[domain.RiskBucket]domain.Allocation, domain.BucketCount)}

	for _, m := range models {
		if !m.Bucket.Valid() {
			return nil, domain.ValidationError{Field: "models.bucket", Value: fmt.Sprint(int(m.Bucket)), Message: "unknown risk bucket"}
		}
		if _, dup := c.models[m.Bucket]; dup {
			return nil, domain.ValidationError{Field: "models.bucket", Value: fmt.Sprint(int(m.Bucket)), Message: "duplicate model portfolio"}
		}
		if err := v.Validate(m.Allocation); err != nil {
			return nil, fmt.Errorf("model portfolio for bucket %d: %w", m.Bucket, err)
		}
		c.models[m.Bucket] = m.Allocation.Clone()
	}

	for _, b := range domain.AllBuckets() {
		if _, ok := c.models[b]; !ok {
			return nil, domain.ValidationError{Field: "models", Value: fmt.Sprint(int(b)), Message: "risk bucket has no model portfolio"}
		}
	}

	return c, nil
}

// Model returns a copy of the model allocation of bucket
func (c *Catalog) Model(bucket domain.RiskBucket) (domain.Allocation, error) {
	m, ok := c.models[bucket]
	if !ok {
		return nil, domain.ValidationError{Field: "bucket", Value: fmt.Sprint(int(bucket)), Message: "must be between 0 and 4"}
	}
	return m.Clone(), nil
}

// Models returns copies of every model in bucket order
func (c *Catalog) Models() []Model {
	out := make([]Model, 0, len(c.models))
	for _, b := range domain.AllBuckets() {
		out = append(out, Model{Bucket: b, Allocation: c.models[b].Clone()})
	}
	return out
}
