package questionnaire

import (
	"fmt"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/rs/zerolog"
)

// QuestionScore is the contribution of one answer to the total
type QuestionScore struct {
	Question Question `json:"question"`
	Answer   string   `json:"answer"`
	Points   int      `json:"points"`
}

// Result is the outcome of scoring an answer set
type Result struct {
	TotalScore int             `json:"total_score"`
	MaxScore   int             `json:"max_score"`
	Breakdown  []QuestionScore `json:"breakdown"`
}

// Scorer reduces a complete answer set to a total score.
// It holds no state besides the immutable weight table.
type Scorer struct {
	table *WeightTable
	log   zerolog.Logger
}

// NewScorer creates a scorer over table
func NewScorer(table *WeightTable, log zerolog.Logger) *Scorer {
	return &Scorer{
		table: table,
		log:   log.With().Str("component", "questionnaire_scorer").Logger(),
	}
}

// Table returns the weight table used for scoring
func (s *Scorer) Table() *WeightTable {
	return s.table
}

// Score sums the points of every answer. Invalid answers fail with
// domain.ValidationErrors before anything is scored.
func (s *Scorer) Score(a Answers) (Result, error) {
	if err := a.Validate(); err != nil {
		return Result{}, err
	}

	breakdown := make([]QuestionScore, 0, len(options)+1)
	agePoints := s.table.AgePoints(a.Age)
	breakdown = append(breakdown, QuestionScore{
		Question: QuestionAge,
		Answer:   fmt.Sprint(a.Age),
		Points:   agePoints,
	})
	total := agePoints

	for _, q := range CategoricalQuestions() {
		value := a.Choice(q)
		pts, ok := s.table.Points(q, value)
		if !ok {
			// Unreachable with a validated table
			return Result{}, domain.ValidationError{Field: string(q), Value: value, Message: "answer has no weight"}
		}
		breakdown = append(breakdown, QuestionScore{Question: q, Answer: value, Points: pts})
		total += pts
	}

	s.log.Debug().
		Int("total_score", total).
		Int("max_score", s.table.MaxScore()).
		Msg("Scored questionnaire")

	return Result{
		TotalScore: total,
		MaxScore:   s.table.MaxScore(),
		Breakdown:  breakdown,
	}, nil
}

// ScoreRaw parses a raw submission and scores it
func (s *Scorer) ScoreRaw(raw RawAnswers) (Answers, Result, error) {
	a, err := Parse(raw)
	if err != nil {
		return Answers{}, Result{}, err
	}
	res, err := s.Score(a)
	if err != nil {
		return Answers{}, Result{}, err
	}
	return a, res, nil
}
