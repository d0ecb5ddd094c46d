// Package handlers provides HTTP handlers for risk profiling.
package handlers

import (
	"net/http"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/httpapi"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/questionnaire"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/risk"
	"github.com/rs/zerolog"
)

// Handler handles risk profiling HTTP requests
type Handler struct {
	profiler   *risk.Profiler
	classifier *risk.Classifier
	weights    *questionnaire.WeightTable
	resp       *httpapi.Responder
	log        zerolog.Logger
}

// NewHandler creates a new risk profiling handler
func NewHandler(
	profiler *risk.Profiler,
	classifier *risk.Classifier,
	weights *questionnaire.WeightTable,
	log zerolog.Logger,
) *Handler {
	l := log.With().Str("handler", "risk").Logger()
	return &Handler{
		profiler:   profiler,
		classifier: classifier,
		weights:    weights,
		resp:       httpapi.NewResponder(l),
		log:        l,
	}
}

// BucketsResponse is the payload of GET /api/risk/buckets
type BucketsResponse struct {
	Buckets    []risk.BucketInfo `json:"buckets"`
	Thresholds []int             `json:"thresholds"`
}

// QuestionnaireResponse is the payload of GET /api/risk/questionnaire
type QuestionnaireResponse struct {
	Questions []questionnaire.QuestionView `json:"questions"`
	MaxScore  int                          `json:"max_score"`
}

// HandleProfile handles POST /api/risk/profile
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	var raw questionnaire.RawAnswers
	if err := httpapi.Decode(r, &raw); err != nil {
		h.resp.WriteBadRequest(w, r, err)
		return
	}

	profile, err := h.profiler.ScoreRaw(raw)
	if err == nil {
		h.log.Info().
			Str("profile_id", profile.ProfileID).
			Int("risk_bucket", int(profile.RiskBucket)).
			Msg("Risk profile scored")
	}
	h.resp.WriteOperation(w, r, "score", profile, err)
}

// HandleSimulate handles POST /api/risk/simulate
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var raw questionnaire.RawAnswers
	if err := httpapi.Decode(r, &raw); err != nil {
		h.resp.WriteBadRequest(w, r, err)
		return
	}

	profile, err := h.profiler.SimulateRaw(raw)
	h.resp.WriteOperation(w, r, "simulate_score", profile, err)
}

// HandleBuckets handles GET /api/risk/buckets
func (h *Handler) HandleBuckets(w http.ResponseWriter, r *http.Request) {
	h.resp.WriteData(w, r, http.StatusOK, BucketsResponse{
		Buckets:    h.classifier.Buckets(),
		Thresholds: h.classifier.Thresholds(),
	})
}

// HandleQuestionnaire handles GET /api/risk/questionnaire
func (h *Handler) HandleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	h.resp.WriteData(w, r, http.StatusOK, QuestionnaireResponse{
		Questions: h.weights.Questions(),
		MaxScore:  h.weights.MaxScore(),
	})
}
