// Package risk classifies questionnaire scores into risk buckets and builds
// risk profiles.
package risk

import (
	"fmt"
	"sort"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
)

// ThresholdCount is the number of boundaries between the five buckets
const ThresholdCount = domain.BucketCount - 1

// BucketInfo describes a risk bucket and the score range it covers
type BucketInfo struct {
	Bucket      domain.RiskBucket `json:"bucket"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Color       string            `json:"color"`
	MinScore    int               `json:"min_score"`
	MaxScore    int               `json:"max_score"`
}

// Classifier maps a score in [MinScore, MaxScore] to a bucket.
// Thresholds are the lower-inclusive starting scores of buckets 1..4.
type Classifier struct {
	thresholds []int
	buckets    []BucketInfo
}

// NewClassifier validates thresholds and bucket descriptions.
// Score ranges on the returned infos are derived from thresholds.
func NewClassifier(thresholds []int, buckets []BucketInfo) (*Classifier, error) {
	var errs domain.ValidationErrors

	if len(thresholds) != ThresholdCount {
		errs = append(errs, domain.ValidationError{
			Field:   "thresholds",
			Value:   fmt.Sprint(thresholds),
			Message: fmt.Sprintf("expected %d thresholds", ThresholdCount),
		})
	} else {
		prev := domain.MinScore
		for i, th := range thresholds {
			// Every bucket must cover at least one score
			if th <= prev || th > domain.MaxScore {
				errs = append(errs, domain.ValidationError{
					Field:   fmt.Sprintf("thresholds[%d]", i),
					Value:   fmt.Sprint(th),
					Message: fmt.Sprintf("must be ascending within (%d, %d]", domain.MinScore, domain.MaxScore),
				})
			}
			prev = th
		}
	}

	if len(buckets) != domain.BucketCount {
		errs = append(errs, domain.ValidationError{
			Field:   "buckets",
			Value:   fmt.Sprint(len(buckets)),
			Message: fmt.Sprintf("expected %d buckets", domain.BucketCount),
		})
	}

	sorted := append([]BucketInfo(nil), buckets...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Bucket < sorted[j].Bucket })
	for i, b := range sorted {
		if b.Bucket != domain.RiskBucket(i) {
			errs = append(errs, domain.ValidationError{Field: "buckets", Value: fmt.Sprint(int(b.Bucket)), Message: "buckets must be 0..4 without gaps or duplicates"})
			break
		}
		if b.Label == "" {
			errs = append(errs, domain.ValidationError{Field: fmt.Sprintf("buckets[%d].label", i), Message: "is required"})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	c := &Classifier{
		thresholds: append([]int(nil), thresholds...),
		buckets:    sorted,
	}
	for i := range c.buckets {
		c.buckets[i].MinScore = domain.MinScore
		if i > 0 {
			c.buckets[i].MinScore = c.thresholds[i-1]
		}
		c.buckets[i].MaxScore = domain.MaxScore
		if i < ThresholdCount {
			c.buckets[i].MaxScore = c.thresholds[i] - 1
		}
	}
	return c, nil
}

// Classify maps a score to its bucket. The output is non-decreasing in score.
func (c *Classifier) Classify(score int) (domain.RiskBucket, error) {
	if score < domain.MinScore || score > domain.MaxScore {
		return 0, domain.ValidationError{
			Field:   "score",
			Value:   fmt.Sprint(score),
			Message: fmt.Sprintf("must be between %d and %d", domain.MinScore, domain.MaxScore),
		}
	}
	bucket := domain.BucketConservative
	for _, th := range c.thresholds {
		if score >= th {
			bucket++
		}
	}
	return bucket, nil
}

// Info returns the description of bucket
func (c *Classifier) Info(bucket domain.RiskBucket) (BucketInfo, error) {
	if !bucket.Valid() {
		return BucketInfo{}, domain.ValidationError{Field: "bucket", Value: fmt.Sprint(int(bucket)), Message: "must be between 0 and 4"}
	}
	return c.buckets[bucket], nil
}

// Buckets returns every bucket in ascending order
func (c *Classifier) Buckets() []BucketInfo {
	return append([]BucketInfo(nil), c.buckets...)
}

// Thresholds returns the lower-inclusive starting scores of buckets 1..4
func (c *Classifier) Thresholds() []int {
	return append([]int(nil), c.thresholds...)
}
