// Package httpapi holds the request decoding and response envelope shared by
// every module's HTTP handlers.
package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Content types understood by the API
const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgpack = "application/msgpack"
)

// MaxBodyBytes bounds request bodies. Value series are the largest inputs.
const MaxBodyBytes = 4 << 20

// Envelope wraps every successful response
type Envelope struct {
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata accompanies every successful response
type Metadata struct {
	Timestamp string `json:"timestamp"`
}

// ErrorResponse wraps every failed response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure in enough detail for the caller to act on it
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Codes for failures that do not originate in the engine
const (
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal_error"
)

// Responder writes envelopes in the representation the client asked for
type Responder struct {
	log zerolog.Logger
}

// NewResponder creates a responder logging encode failures to log
func NewResponder(log zerolog.Logger) *Responder {
	return &Responder{log: log}
}

// Decode reads a JSON or MessagePack request body into v
func Decode(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("request body is empty")
	}

	if isMsgpack(r.Header.Get("Content-Type")) {
		dec := msgpack.NewDecoder(bytes.NewReader(body))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("invalid msgpack body: %w", err)
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// WriteData writes data inside the success envelope
func (rs *Responder) WriteData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	rs.write(w, r, status, Envelope{
		Data: data,
		Metadata: Metadata{
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}

// WriteOperation records the outcome of an engine operation and writes
// either its result or its error
func (rs *Responder) WriteOperation(w http.ResponseWriter, r *http.Request, operation string, data interface{}, err error) {
	if err != nil {
		metrics.ObserveOperation(operation, CodeOf(err))
		rs.WriteError(w, r, err)
		return
	}
	metrics.ObserveOperation(operation, metrics.OutcomeOK)
	rs.WriteData(w, r, http.StatusOK, data)
}

// WriteError maps err to a status code and writes the error envelope
func (rs *Responder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := ErrorBody{
		Code:    CodeOf(err),
		Message: err.Error(),
		Details: detailsOf(err),
	}
	if status >= http.StatusInternalServerError {
		rs.log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		body.Message = "internal error"
		body.Details = nil
	}
	rs.write(w, r, status, ErrorResponse{Error: body})
}

// WriteBadRequest reports a malformed request
func (rs *Responder) WriteBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	rs.log.Warn().Err(err).Str("path", r.URL.Path).Msg("Malformed request")
	rs.write(w, r, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    CodeBadRequest,
		Message: err.Error(),
	}})
}

// WriteNotFound reports a missing resource
func (rs *Responder) WriteNotFound(w http.ResponseWriter, r *http.Request, message string) {
	rs.write(w, r, http.StatusNotFound, ErrorResponse{Error: ErrorBody{
		Code:    CodeNotFound,
		Message: message,
	}})
}

func (rs *Responder) write(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	asMsgpack := isMsgpack(r.Header.Get("Accept"))
	body, err := encode(payload, asMsgpack)
	if err != nil {
		rs.log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to encode response")
		status = http.StatusInternalServerError
		body, err = encode(ErrorResponse{Error: ErrorBody{
			Code:    CodeInternal,
			Message: "failed to encode response",
		}}, asMsgpack)
		if err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
			return
		}
	}

	if asMsgpack {
		w.Header().Set("Content-Type", ContentTypeMsgpack)
	} else {
		w.Header().Set("Content-Type", ContentTypeJSON)
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		rs.log.Error().Err(err).Msg("Failed to write response")
	}
}

// encode renders payload completely before anything reaches the client
func encode(payload interface{}, asMsgpack bool) ([]byte, error) {
	var buf bytes.Buffer
	if asMsgpack {
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(payload); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StatusFor maps an error to its HTTP status. Engine errors are client
// errors on well-formed requests; anything else is internal.
func StatusFor(err error) int {
	var coded domain.Coded
	if errors.As(err, &coded) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// CodeOf returns the stable code of an engine error, or internal_error
func CodeOf(err error) string {
	var coded domain.Coded
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return CodeInternal
}

func detailsOf(err error) interface{} {
	var validation domain.ValidationErrors
	if errors.As(err, &validation) {
		return validation
	}
	var single domain.ValidationError
	if errors.As(err, &single) {
		return []domain.ValidationError{single}
	}
	var unknown domain.UnknownTickerError
	if errors.As(err, &unknown) {
		return unknown
	}
	var weight domain.InvalidWeightError
	if errors.As(err, &weight) {
		details := map[string]interface{}{
			"ticker": weight.Ticker,
			"reason": weight.Reason,
			"weight": weight.Weight,
		}
		if math.IsNaN(weight.Weight) || math.IsInf(weight.Weight, 0) {
			// JSON has no representation for non-finite numbers
			details["weight"] = fmt.Sprint(weight.Weight)
		}
		return details
	}
	var sum domain.AllocationSumError
	if errors.As(err, &sum) {
		return sum
	}
	var short domain.InsufficientDataError
	if errors.As(err, &short) {
		return short
	}
	var degenerate domain.DegenerateMetricError
	if errors.As(err, &degenerate) {
		return degenerate
	}
	return nil
}

func isMsgpack(header string) bool {
	return strings.Contains(strings.ToLower(header), ContentTypeMsgpack)
}
