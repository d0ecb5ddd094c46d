package risk

import (
	"fmt"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/portfolio"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/questionnaire"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// profileNamespace scopes the name-based profile identifiers
var profileNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:riskengine:risk-profile"))

// ProfileID derives the deterministic identifier of an answer set.
// Identical answers always produce the same identifier.
func ProfileID(a questionnaire.Answers) string {
	return uuid.NewSHA1(profileNamespace, []byte(a.Canonical())).String()
}

// Profile is the outcome of scoring a questionnaire
type Profile struct {
	ProfileID       string                        `json:"profile_id"`
	TotalScore      int                           `json:"total_score"`
	MaxScore        int                           `json:"max_score"`
	RiskBucket      domain.RiskBucket             `json:"risk_bucket"`
	RiskLabel       string                        `json:"risk_label"`
	RiskDescription string                        `json:"risk_description"`
	RiskColor       string                        `json:"risk_color"`
	ModelPortfolio  domain.Allocation             `json:"model_portfolio"`
	Breakdown       []questionnaire.QuestionScore `json:"breakdown"`
	Answers         questionnaire.Answers         `json:"answers"`
	Simulated       bool                          `json:"simulated"`
}

// Profiler orchestrates scoring, classification and model lookup.
// It stores nothing; persisting a profile is the caller's decision.
type Profiler struct {
	scorer     *questionnaire.Scorer
	classifier *Classifier
	catalog    *portfolio.Catalog
	log        zerolog.Logger
}

// NewProfiler creates a profiler
func NewProfiler(
	scorer *questionnaire.Scorer,
	classifier *Classifier,
	catalog *portfolio.Catalog,
	log zerolog.Logger,
) *Profiler {
	return &Profiler{
		scorer:     scorer,
		classifier: classifier,
		catalog:    catalog,
		log:        log.With().Str("component", "risk_profiler").Logger(),
	}
}

// Score builds the risk profile of a complete answer set
func (p *Profiler) Score(a questionnaire.Answers) (Profile, error) {
	return p.build(a, false)
}

// Simulate performs the same computation as Score for what-if exploration.
// The result is flagged as simulated so callers do not store it by mistake.
func (p *Profiler) Simulate(a questionnaire.Answers) (Profile, error) {
	return p.build(a, true)
}

// ScoreRaw parses a raw submission and scores it
func (p *Profiler) ScoreRaw(raw questionnaire.RawAnswers) (Profile, error) {
	a, err := questionnaire.Parse(raw)
	if err != nil {
		return Profile{}, err
	}
	return p.Score(a)
}

// SimulateRaw parses a raw submission and simulates it
func (p *Profiler) SimulateRaw(raw questionnaire.RawAnswers) (Profile, error) {
	a, err := questionnaire.Parse(raw)
	if err != nil {
		return Profile{}, err
	}
	return p.Simulate(a)
}

func (p *Profiler) build(a questionnaire.Answers, simulated bool) (Profile, error) {
	res, err := p.scorer.Score(a)
	if err != nil {
		return Profile{}, err
	}

	bucket, err := p.classifier.Classify(res.TotalScore)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to classify score %d: %w", res.TotalScore, err)
	}

	info, err := p.classifier.Info(bucket)
	if err != nil {
		return Profile{}, err
	}

	model, err := p.catalog.Model(bucket)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get model portfolio: %w", err)
	}

	profile := Profile{
		ProfileID:       ProfileID(a),
		TotalScore:      res.TotalScore,
		MaxScore:        res.MaxScore,
		RiskBucket:      bucket,
		RiskLabel:       info.Label,
		RiskDescription: info.Description,
		RiskColor:       info.Color,
		ModelPortfolio:  model,
		Breakdown:       res.Breakdown,
		Answers:         a,
		Simulated:       simulated,
	}

	p.log.Debug().
		Str("profile_id", profile.ProfileID).
		Int("total_score", profile.TotalScore).
		Str("risk_label", profile.RiskLabel).
		Bool("simulated", simulated).
		Msg("Built risk profile")

	return profile, nil
}
