// Package questionnaire turns questionnaire answers into a risk score.
//
// Every categorical question has a closed set of answer codes, ordered from
// the least to the most risk-seeking choice. Answers are parsed into typed
// values at the boundary so the scorer only ever sees valid input.
package questionnaire

import (
	"fmt"
	"strings"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
)

// Age bounds accepted by the questionnaire
const (
	MinAge = 18
	MaxAge = 100
)

// Question identifies one of the ten questionnaire fields
type Question string

// Questionnaire fields, in presentation order
const (
	QuestionAge       Question = "age"
	QuestionHorizon   Question = "horizon"
	QuestionIncome    Question = "income"
	QuestionKnowledge Question = "knowledge"
	QuestionMaxDrop   Question = "max_drop"
	QuestionReaction  Question = "reaction"
	QuestionLiquidity Question = "liquidity"
	QuestionGoal      Question = "goal"
	QuestionInflation Question = "inflation"
	QuestionDigital   Question = "digital"
)

// CategoricalQuestions returns the nine questions answered from a fixed set
func CategoricalQuestions() []Question {
	return []Question{
		QuestionHorizon,
		QuestionIncome,
		QuestionKnowledge,
		QuestionMaxDrop,
		QuestionReaction,
		QuestionLiquidity,
		QuestionGoal,
		QuestionInflation,
		QuestionDigital,
	}
}

// Horizon is the investment horizon
type Horizon string

const (
	HorizonUnder3Years Horizon = "under_3_years"
	Horizon3To5Years   Horizon = "3_to_5_years"
	Horizon5To10Years  Horizon = "5_to_10_years"
	HorizonOver10Years Horizon = "over_10_years"
)

// IncomeShare is the share of income available to invest
type IncomeShare string

const (
	IncomeUnder5Pct IncomeShare = "under_5_pct"
	Income5To10Pct  IncomeShare = "5_to_10_pct"
	Income10To20Pct IncomeShare = "10_to_20_pct"
	IncomeOver20Pct IncomeShare = "over_20_pct"
)

// Knowledge is the self-assessed financial knowledge
type Knowledge string

const (
	KnowledgeBeginner     Knowledge = "beginner"
	KnowledgeIntermediate Knowledge = "intermediate"
	KnowledgeAdvanced     Knowledge = "advanced"
)

// MaxDrop is the largest tolerable portfolio decline
type MaxDrop string

const (
	MaxDrop5Pct      MaxDrop = "5_pct"
	MaxDrop10Pct     MaxDrop = "10_pct"
	MaxDrop20Pct     MaxDrop = "20_pct"
	MaxDrop30Pct     MaxDrop = "30_pct"
	MaxDropOver30Pct MaxDrop = "over_30_pct"
)

// Reaction is the expected behaviour after a 15% portfolio loss
type Reaction string

const (
	ReactionSellAll  Reaction = "sell_all"
	ReactionSellSome Reaction = "sell_some"
	ReactionHold     Reaction = "hold"
	ReactionBuyMore  Reaction = "buy_more"
)

// Liquidity is the need for ready access to invested money
type Liquidity string

const (
	LiquidityHigh   Liquidity = "high"
	LiquidityMedium Liquidity = "medium"
	LiquidityLow    Liquidity = "low"
)

// Goal is the main investment objective
type Goal string

const (
	GoalPreserveCapital Goal = "preserve_capital"
	GoalRegularIncome   Goal = "regular_income"
	GoalBalancedGrowth  Goal = "balanced_growth"
	GoalMaxGrowth       Goal = "max_growth"
)

// InflationConcern is how much inflation worries the investor
type InflationConcern string

const (
	InflationNotConcerned        InflationConcern = "not_concerned"
	InflationModeratelyConcerned InflationConcern = "moderately_concerned"
	InflationVeryConcerned       InflationConcern = "very_concerned"
)

// DigitalComfort is the trust placed in digital platforms
type DigitalComfort string

const (
	DigitalLow    DigitalComfort = "low"
	DigitalMedium DigitalComfort = "medium"
	DigitalHigh   DigitalComfort = "high"
)

// options lists each closed set from the least to the most risk-seeking code
var options = map[Question][]string{
	QuestionHorizon:   {string(HorizonUnder3Years), string(Horizon3To5Years), string(Horizon5To10Years), string(HorizonOver10Years)},
	QuestionIncome:    {string(IncomeUnder5Pct), string(Income5To10Pct), string(Income10To20Pct), string(IncomeOver20Pct)},
	QuestionKnowledge: {string(KnowledgeBeginner), string(KnowledgeIntermediate), string(KnowledgeAdvanced)},
	QuestionMaxDrop:   {string(MaxDrop5Pct), string(MaxDrop10Pct), string(MaxDrop20Pct), string(MaxDrop30Pct), string(MaxDropOver30Pct)},
	QuestionReaction:  {string(ReactionSellAll), string(ReactionSellSome), string(ReactionHold), string(ReactionBuyMore)},
	QuestionLiquidity: {string(LiquidityHigh), string(LiquidityMedium), string(LiquidityLow)},
	QuestionGoal:      {string(GoalPreserveCapital), string(GoalRegularIncome), string(GoalBalancedGrowth), string(GoalMaxGrowth)},
	QuestionInflation: {string(InflationNotConcerned), string(InflationModeratelyConcerned), string(InflationVeryConcerned)},
	QuestionDigital:   {string(DigitalLow), string(DigitalMedium), string(DigitalHigh)},
}

// Options returns the closed answer set of a categorical question, ordered
// from the least to the most risk-seeking code
func Options(q Question) []string {
	src := options[q]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func isOption(q Question, value string) bool {
	for _, opt := range options[q] {
		if opt == value {
			return true
		}
	}
	return false
}

// Answers is a complete, validated answer set
type Answers struct {
	Age       int              `json:"age"`
	Horizon   Horizon          `json:"horizon"`
	Income    IncomeShare      `json:"income"`
	Knowledge Knowledge        `json:"knowledge"`
	MaxDrop   MaxDrop          `json:"max_drop"`
	Reaction  Reaction         `json:"reaction"`
	Liquidity Liquidity        `json:"liquidity"`
	Goal      Goal             `json:"goal"`
	Inflation InflationConcern `json:"inflation"`
	Digital   DigitalComfort   `json:"digital"`
}

// Choice returns the answer code given to a categorical question
func (a Answers) Choice(q Question) string {
	switch q {
	case QuestionHorizon:
		return string(a.Horizon)
	case QuestionIncome:
		return string(a.Income)
	case QuestionKnowledge:
		return string(a.Knowledge)
	case QuestionMaxDrop:
		return string(a.MaxDrop)
	case QuestionReaction:
		return string(a.Reaction)
	case QuestionLiquidity:
		return string(a.Liquidity)
	case QuestionGoal:
		return string(a.Goal)
	case QuestionInflation:
		return string(a.Inflation)
	case QuestionDigital:
		return string(a.Digital)
	}
	return ""
}

// With returns a copy of a with the categorical question q answered value.
// It does not validate value.
func (a Answers) With(q Question, value string) Answers {
	switch q {
	case QuestionHorizon:
		a.Horizon = Horizon(value)
	case QuestionIncome:
		a.Income = IncomeShare(value)
	case QuestionKnowledge:
		a.Knowledge = Knowledge(value)
	case QuestionMaxDrop:
		a.MaxDrop = MaxDrop(value)
	case QuestionReaction:
		a.Reaction = Reaction(value)
	case QuestionLiquidity:
		a.Liquidity = Liquidity(value)
	case QuestionGoal:
		a.Goal = Goal(value)
	case QuestionInflation:
		a.Inflation = InflationConcern(value)
	case QuestionDigital:
		a.Digital = DigitalComfort(value)
	}
	return a
}

// Validate checks the age range and that every categorical answer belongs to
// its closed set. All problems are reported together.
func (a Answers) Validate() error {
	var errs domain.ValidationErrors
	if a.Age < MinAge || a.Age > MaxAge {
		errs = append(errs, domain.ValidationError{
			Field:   string(QuestionAge),
			Value:   fmt.Sprint(a.Age),
			Message: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge),
		})
	}
	for _, q := range CategoricalQuestions() {
		value := a.Choice(q)
		if value == "" {
			errs = append(errs, domain.ValidationError{Field: string(q), Message: "is required"})
			continue
		}
		if !isOption(q, value) {
			errs = append(errs, domain.ValidationError{
				Field:   string(q),
				Value:   value,
				Message: "must be one of " + strings.Join(options[q], ", "),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Canonical renders the answers as a stable string, used to derive
// deterministic identifiers
func (a Answers) Canonical() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%d", QuestionAge, a.Age)
	for _, q := range CategoricalQuestions() {
		fmt.Fprintf(&b, ";%s=%s", q, a.Choice(q))
	}
	return b.String()
}

// RawAnswers is the boundary shape of a questionnaire submission. Absent
// fields stay nil so that missing answers can be told apart from empty ones.
type RawAnswers struct {
	Age       *int    `json:"age" yaml:"age"`
	Horizon   *string `json:"horizon" yaml:"horizon"`
	Income    *string `json:"income" yaml:"income"`
	Knowledge *string `json:"knowledge" yaml:"knowledge"`
	MaxDrop   *string `json:"max_drop" yaml:"max_drop"`
	Reaction  *string `json:"reaction" yaml:"reaction"`
	Liquidity *string `json:"liquidity" yaml:"liquidity"`
	Goal      *string `json:"goal" yaml:"goal"`
	Inflation *string `json:"inflation" yaml:"inflation"`
	Digital   *string `json:"digital" yaml:"digital"`
}

func (r RawAnswers) field(q Question) *string {
	switch q {
	case QuestionHorizon:
		return r.Horizon
	case QuestionIncome:
		return r.Income
	case QuestionKnowledge:
		return r.Knowledge
	case QuestionMaxDrop:
		return r.MaxDrop
	case QuestionReaction:
		return r.Reaction
	case QuestionLiquidity:
		return r.Liquidity
	case QuestionGoal:
		return r.Goal
	case QuestionInflation:
		return r.Inflation
	case QuestionDigital:
		return r.Digital
	}
	return nil
}

// Parse converts a raw submission into Answers. Missing fields, unknown
// codes and out-of-range ages are all reported in one ValidationErrors;
// no default is ever substituted.
func Parse(raw RawAnswers) (Answers, error) {
	var errs domain.ValidationErrors
	var a Answers

	if raw.Age == nil {
		errs = append(errs, domain.ValidationError{Field: string(QuestionAge), Message: "is required"})
	} else {
		a.Age = *raw.Age
	}

	for _, q := range CategoricalQuestions() {
		v := raw.field(q)
		if v == nil || strings.TrimSpace(*v) == "" {
			errs = append(errs, domain.ValidationError{Field: string(q), Message: "is required"})
			continue
		}
		a = a.With(q, strings.ToLower(strings.TrimSpace(*v)))
	}

	if err := a.Validate(); err != nil {
		// Fields already reported as missing are not repeated
		reported := make(map[string]bool, len(errs))
		for _, e := range errs {
			reported[e.Field] = true
		}
		for _, e := range err.(domain.ValidationErrors) {
			if !reported[e.Field] {
				errs = append(errs, e)
			}
		}
	}

	if len(errs) > 0 {
		return Answers{}, sortByQuestion(errs)
	}
	return a, nil
}

// sortByQuestion orders errors as the questions are presented
func sortByQuestion(errs domain.ValidationErrors) domain.ValidationErrors {
	order := append([]Question{QuestionAge}, CategoricalQuestions()...)
	out := make(domain.ValidationErrors, 0, len(errs))
	for _, q := range order {
		for _, e := range errs {
			if e.Field == string(q) {
				out = append(out, e)
			}
		}
	}
	return out
}
