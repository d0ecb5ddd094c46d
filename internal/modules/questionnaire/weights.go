package questionnaire

import (
	"fmt"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
)

// MaxPointsPerQuestion caps the contribution of a single answer, which keeps
// ten answers within [0, domain.MaxScore]
const MaxPointsPerQuestion = domain.MaxScore / 10

// AgeStep awards Points to ages strictly below Under
type AgeStep struct {
	Under  int `json:"under"`
	Points int `json:"points"`
}

// AgeRule is the monotone step function scoring the age answer.
// The first step whose bound exceeds the age applies; otherwise DefaultPoints.
type AgeRule struct {
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Steps         []AgeStep `json:"steps"`
	DefaultPoints int       `json:"default_points"`
}

// Option is one scored answer of a categorical question
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// QuestionSpec describes a categorical question and its scored options
type QuestionSpec struct {
	Key      Question `json:"key"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Options  []Option `json:"options"`
}

// WeightTable is the immutable mapping from answers to points
type WeightTable struct {
	age       AgeRule
	questions []QuestionSpec
	points    map[Question]map[string]int
	maxScore  int
}

// NewWeightTable validates the rules and builds the table. It rejects a
// table that does not cover every closed answer code, awards points outside
// [0, MaxPointsPerQuestion], or would let a riskier answer score fewer points.
func NewWeightTable(age AgeRule, questions []QuestionSpec) (*WeightTable, error) {
	var errs domain.ValidationErrors

	errs = append(errs, validateAgeRule(age)...)

	byKey := make(map[Question]QuestionSpec, len(questions))
	for i, q := range questions {
		if _, dup := byKey[q.Key]; dup {
			errs = append(errs, domain.ValidationError{
				Field:   fmt.Sprintf("questions[%d].key", i),
				Value:   string(q.Key),
				Message: "duplicate question",
			})
			continue
		}
		byKey[q.Key] = q
	}

	t := &WeightTable{
		age:    cloneAgeRule(age),
		points: make(map[Question]map[string]int, len(options)),
	}

	for _, key := range CategoricalQuestions() {
		spec, ok := byKey[key]
		if !ok {
			errs = append(errs, domain.ValidationError{Field: string(key), Message: "question has no weights"})
			continue
		}
		delete(byKey, key)
		errs = append(errs, validateQuestion(spec)...)

		pts := make(map[string]int, len(spec.Options))
		for _, opt := range spec.Options {
			pts[opt.Value] = opt.Points
		}
		t.points[key] = pts
		t.questions = append(t.questions, cloneQuestion(spec))
	}

	for key := range byKey {
		errs = append(errs, domain.ValidationError{Field: string(key), Message: "unknown question"})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	t.maxScore = t.maxAgePoints()
	for _, q := range t.questions {
		t.maxScore += q.Options[len(q.Options)-1].Points
	}
	return t, nil
}

func validateAgeRule(age AgeRule) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if len(age.Steps) == 0 {
		errs = append(errs, domain.ValidationError{Field: "age.steps", Message: "at least one step is required"})
	}
	prevUnder, prevPoints := MinAge, MaxPointsPerQuestion
	for i, step := range age.Steps {
		field := fmt.Sprintf("age.steps[%d]", i)
		if (i > 0 && step.Under <= prevUnder) || step.Under <= MinAge {
			errs = append(errs, domain.ValidationError{Field: field + ".under", Value: fmt.Sprint(step.Under), Message: "bounds must be ascending and above the minimum age"})
		}
		if step.Points < 0 || step.Points > MaxPointsPerQuestion {
			errs = append(errs, domain.ValidationError{Field: field + ".points", Value: fmt.Sprint(step.Points), Message: fmt.Sprintf("must be between 0 and %d", MaxPointsPerQuestion)})
		}
		if step.Points > prevPoints {
			errs = append(errs, domain.ValidationError{Field: field + ".points", Value: fmt.Sprint(step.Points), Message: "older ages must not score more points"})
		}
		prevUnder, prevPoints = step.Under, step.Points
	}
	if age.DefaultPoints < 0 || age.DefaultPoints > prevPoints {
		errs = append(errs, domain.ValidationError{Field: "age.default_points", Value: fmt.Sprint(age.DefaultPoints), Message: "must be between 0 and the last step's points"})
	}
	return errs
}

func validateQuestion(spec QuestionSpec) domain.ValidationErrors {
	var errs domain.ValidationErrors
	want := options[spec.Key]
	if len(spec.Options) != len(want) {
		return append(errs, domain.ValidationError{
			Field:   string(spec.Key),
			Value:   fmt.Sprint(len(spec.Options)),
			Message: fmt.Sprintf("expected %d options", len(want)),
		})
	}
	prev := 0
	for i, opt := range spec.Options {
		field := fmt.Sprintf("%s.options[%d]", spec.Key, i)
		if opt.Value != want[i] {
			errs = append(errs, domain.ValidationError{Field: field + ".value", Value: opt.Value, Message: fmt.Sprintf("expected %q", want[i])})
		}
		if opt.Points < 0 || opt.Points > MaxPointsPerQuestion {
			errs = append(errs, domain.ValidationError{Field: field + ".points", Value: fmt.Sprint(opt.Points), Message: fmt.Sprintf("must be between 0 and %d", MaxPointsPerQuestion)})
		}
		if opt.Points < prev {
			errs = append(errs, domain.ValidationError{Field: field + ".points", Value: fmt.Sprint(opt.Points), Message: "riskier answers must not score fewer points"})
		}
		prev = opt.Points
	}
	return errs
}

// AgePoints scores an age
func (t *WeightTable) AgePoints(age int) int {
	for _, step := range t.age.Steps {
		if age < step.Under {
			return step.Points
		}
	}
	return t.age.DefaultPoints
}

// Points returns the points of a categorical answer
func (t *WeightTable) Points(q Question, value string) (int, bool) {
	pts, ok := t.points[q][value]
	return pts, ok
}

// MaxScore is the highest total the table can award
func (t *WeightTable) MaxScore() int {
	return t.maxScore
}

func (t *WeightTable) maxAgePoints() int {
	if len(t.age.Steps) == 0 {
		return t.age.DefaultPoints
	}
	return t.age.Steps[0].Points
}

// QuestionView is the presentation of one question for the intake surface
type QuestionView struct {
	Key       Question `json:"key"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Type      string   `json:"type"`
	Min       int      `json:"min,omitempty"`
	Max       int      `json:"max,omitempty"`
	MaxPoints int      `json:"max_points"`
	Options   []Option `json:"options,omitempty"`
}

// Questions returns the questionnaire structure in presentation order
func (t *WeightTable) Questions() []QuestionView {
	views := make([]QuestionView, 0, len(t.questions)+1)
	views = append(views, QuestionView{
		Key:       QuestionAge,
		Title:     t.age.Title,
		Category:  t.age.Category,
		Type:      "number",
		Min:       MinAge,
		Max:       MaxAge,
		MaxPoints: t.maxAgePoints(),
	})
	for _, q := range t.questions {
		views = append(views, QuestionView{
			Key:       q.Key,
			Title:     q.Title,
			Category:  q.Category,
			Type:      "select",
			MaxPoints: q.Options[len(q.Options)-1].Points,
			Options:   append([]Option(nil), q.Options...),
		})
	}
	return views
}

func cloneAgeRule(r AgeRule) AgeRule {
	r.Steps = append([]AgeStep(nil), r.Steps...)
	return r
}

func cloneQuestion(q QuestionSpec) QuestionSpec {
	q.Options = append([]Option(nil), q.Options...)
	return q
}
