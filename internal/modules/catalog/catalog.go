// Package catalog loads the engine's static tables (instrument universe,
// questionnaire weights, risk buckets and model portfolios) from YAML.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/allocation"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/portfolio"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/questionnaire"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/risk"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/Gonzalodlm/proyecto-L-v2/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only catalog document version understood
const SupportedVersion = 1

// Document is the YAML shape of a catalog
type Document struct {
	Version       int              `yaml:"version"`
	SumTolerance  float64          `yaml:"sum_tolerance"`
	Instruments   []InstrumentDoc  `yaml:"instruments"`
	Thresholds    []int            `yaml:"thresholds"`
	Buckets       []BucketDoc      `yaml:"buckets"`
	Questionnaire QuestionnaireDoc `yaml:"questionnaire"`
	Models        []ModelDoc       `yaml:"models"`
}

// InstrumentDoc describes one instrument
type InstrumentDoc struct {
	Ticker         string `yaml:"ticker"`
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	Category       string `yaml:"category"`
	AssetClass     string `yaml:"asset_class"`
	RiskLevel      string `yaml:"risk_level"`
	ExpectedReturn string `yaml:"expected_return"`
	Color          string `yaml:"color"`
}

// BucketDoc describes one risk bucket
type BucketDoc struct {
	Bucket      int    `yaml:"bucket"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

// QuestionnaireDoc holds the scoring rules
type QuestionnaireDoc struct {
	Age       AgeDoc        `yaml:"age"`
	Questions []QuestionDoc `yaml:"questions"`
}

// AgeDoc is the age step function. Min and Max document the accepted range
// and must match the engine's bounds.
type AgeDoc struct {
	Title         string       `yaml:"title"`
	Category      string       `yaml:"category"`
	Min           int          `yaml:"min"`
	Max           int          `yaml:"max"`
	Steps         []AgeStepDoc `yaml:"steps"`
	DefaultPoints int          `yaml:"default_points"`
}

// AgeStepDoc awards Points below Under
type AgeStepDoc struct {
	Under  int `yaml:"under"`
	Points int `yaml:"points"`
}

// QuestionDoc is a categorical question
type QuestionDoc struct {
	Key      string      `yaml:"key"`
	Title    string      `yaml:"title"`
	Category string      `yaml:"category"`
	Options  []OptionDoc `yaml:"options"`
}

// OptionDoc is one scored answer
type OptionDoc struct {
	Value  string `yaml:"value"`
	Label  string `yaml:"label"`
	Points int    `yaml:"points"`
}

// ModelDoc is the model portfolio of a bucket
type ModelDoc struct {
	Bucket  int                `yaml:"bucket"`
	Weights map[string]float64 `yaml:"weights"`
}

// Tables are the validated, immutable engine tables
type Tables struct {
	Universe     *universe.Universe
	Weights      *questionnaire.WeightTable
	Classifier   *risk.Classifier
	Models       *portfolio.Catalog
	Validator    *allocation.Validator
	SumTolerance float64
}

// Parse decodes a catalog document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if doc.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported catalog version %d (want %d)", doc.Version, SupportedVersion)
	}
	return &doc, nil
}

// Load reads the catalog at path, or the embedded catalog when path is empty
func Load(path string) (*Document, error) {
	if path == "" {
		return Parse(embedded.Catalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Build validates the document and constructs every table. A positive
// tolerance overrides the document's sum_tolerance.
func (d *Document) Build(tolerance float64) (*Tables, error) {
	if tolerance <= 0 {
		tolerance = d.SumTolerance
	}

	instruments := make([]universe.Instrument, 0, len(d.Instruments))
	for _, in := range d.Instruments {
		instruments = append(instruments, universe.Instrument{
			Ticker:         domain.Ticker(in.Ticker),
			Name:           in.Name,
			Description:    in.Description,
			Category:       universe.Category(in.Category),
			AssetClass:     in.AssetClass,
			RiskLevel:      universe.RiskLevel(in.RiskLevel),
			ExpectedReturn: in.ExpectedReturn,
			Color:          in.Color,
		})
	}
	u, err := universe.New(instruments)
	if err != nil {
		return nil, fmt.Errorf("invalid instrument universe: %w", err)
	}

	weights, err := d.weightTable()
	if err != nil {
		return nil, fmt.Errorf("invalid questionnaire weights: %w", err)
	}

	buckets := make([]risk.BucketInfo, 0, len(d.Buckets))
	for _, b := range d.Buckets {
		buckets = append(buckets, risk.BucketInfo{
			Bucket:      domain.RiskBucket(b.Bucket),
			Label:       b.Label,
			Description: b.Description,
			Color:       b.Color,
		})
	}
	classifier, err := risk.NewClassifier(d.Thresholds, buckets)
	if err != nil {
		return nil, fmt.Errorf("invalid risk buckets: %w", err)
	}

	validator := allocation.NewValidator(u, tolerance)

	models := make([]portfolio.Model, 0, len(d.Models))
	for _, m := range d.Models {
		a := make(domain.Allocation, len(m.Weights))
		for t, w := range m.Weights {
			a[domain.Ticker(t)] = w
		}
		models = append(models, portfolio.Model{Bucket: domain.RiskBucket(m.Bucket), Allocation: a})
	}
	cat, err := portfolio.NewCatalog(models, validator)
	if err != nil {
		return nil, fmt.Errorf("invalid model portfolios: %w", err)
	}

	return &Tables{
		Universe:     u,
		Weights:      weights,
		Classifier:   classifier,
		Models:       cat,
		Validator:    validator,
		SumTolerance: validator.Tolerance(),
	}, nil
}

func (d *Document) weightTable() (*questionnaire.WeightTable, error) {
	age := d.Questionnaire.Age
	if age.Min != questionnaire.MinAge || age.Max != questionnaire.MaxAge {
		return nil, domain.ValidationError{
			Field:   "questionnaire.age",
			Value:   fmt.Sprintf("%d-%d", age.Min, age.Max),
			Message: fmt.Sprintf("range must be %d-%d", questionnaire.MinAge, questionnaire.MaxAge),
		}
	}

	rule := questionnaire.AgeRule{
		Title:         age.Title,
		Category:      age.Category,
		DefaultPoints: age.DefaultPoints,
	}
	for _, s := range age.Steps {
		rule.Steps = append(rule.Steps, questionnaire.AgeStep{Under: s.Under, Points: s.Points})
	}

	specs := make([]questionnaire.QuestionSpec, 0, len(d.Questionnaire.Questions))
	for _, q := range d.Questionnaire.Questions {
		spec := questionnaire.QuestionSpec{
			Key:      questionnaire.Question(q.Key),
			Title:    q.Title,
			Category: q.Category,
		}
		for _, o := range q.Options {
			spec.Options = append(spec.Options, questionnaire.Option{Value: o.Value, Label: o.Label, Points: o.Points})
		}
		specs = append(specs, spec)
	}

	return questionnaire.NewWeightTable(rule, specs)
}

// LoadTables loads and builds the catalog in one step
func LoadTables(path string, tolerance float64) (*Tables, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Build(tolerance)
}
