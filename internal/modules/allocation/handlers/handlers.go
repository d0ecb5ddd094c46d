// Package handlers provides HTTP handlers for allocation composition and
// validation.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/httpapi"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/allocation"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/portfolio"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles allocation HTTP requests
type Handler struct {
	composer *allocation.Composer
	catalog  *portfolio.Catalog
	resp     *httpapi.Responder
	log      zerolog.Logger
}

// NewHandler creates a new allocation handler
func NewHandler(composer *allocation.Composer, catalog *portfolio.Catalog, log zerolog.Logger) *Handler {
	l := log.With().Str("handler", "allocation").Logger()
	return &Handler{
		composer: composer,
		catalog:  catalog,
		resp:     httpapi.NewResponder(l),
		log:      l,
	}
}

// AllocationRequest carries a single allocation
type AllocationRequest struct {
	Allocation domain.Allocation `json:"allocation"`
}

// ModelResponse is a model portfolio with its display breakdown
type ModelResponse struct {
	Bucket     domain.RiskBucket    `json:"bucket"`
	Allocation domain.Allocation    `json:"allocation"`
	Breakdown  allocation.Breakdown `json:"breakdown"`
}

// HandleCompose handles POST /api/allocation/compose
func (h *Handler) HandleCompose(w http.ResponseWriter, r *http.Request) {
	var req allocation.ComposeRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.resp.WriteBadRequest(w, r, err)
		return
	}

	result, err := h.composer.Compose(req)
	h.resp.WriteOperation(w, r, "compose_allocation", result, err)
}

// HandleBreakdown handles POST /api/allocation/breakdown
func (h *Handler) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAllocation(w, r)
	if !ok {
		return
	}

	result, err := h.composer.Breakdown(req.Allocation)
	h.resp.WriteOperation(w, r, "allocation_breakdown", result, err)
}

// HandleValidate handles POST /api/allocation/validate
// An invalid allocation is a successful validation: problems are listed in
// the report, not returned as an error status.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAllocation(w, r)
	if !ok {
		return
	}

	report := h.composer.ValidateAll(req.Allocation)
	h.resp.WriteOperation(w, r, "validate_allocation", report, nil)
}

// HandleNormalize handles POST /api/allocation/normalize
func (h *Handler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAllocation(w, r)
	if !ok {
		return
	}

	normalized, err := h.composer.Normalize(req.Allocation)
	h.resp.WriteOperation(w, r, "normalize_allocation", AllocationRequest{Allocation: normalized}, err)
}

// HandleGetModel handles GET /api/allocation/models/{bucket}
func (h *Handler) HandleGetModel(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "bucket"))
	if err != nil {
		h.resp.WriteBadRequest(w, r, errors.New("bucket must be an integer between 0 and 4"))
		return
	}
	bucket := domain.RiskBucket(n)

	model, err := h.catalog.Model(bucket)
	if err != nil {
		h.resp.WriteNotFound(w, r, err.Error())
		return
	}

	breakdown, err := h.composer.Breakdown(model)
	if err != nil {
		h.resp.WriteError(w, r, err)
		return
	}

	h.resp.WriteData(w, r, http.StatusOK, ModelResponse{
		Bucket:     bucket,
		Allocation: model,
		Breakdown:  breakdown,
	})
}

func (h *Handler) decodeAllocation(w http.ResponseWriter, r *http.Request) (AllocationRequest, bool) {
	var req AllocationRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.resp.WriteBadRequest(w, r, err)
		return req, false
	}
	if req.Allocation == nil {
		h.resp.WriteBadRequest(w, r, errors.New("allocation is required"))
		return req, false
	}
	return req, true
}
