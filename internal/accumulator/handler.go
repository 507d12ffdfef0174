package accumulator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/primstats/internal/core/errors"
	"github.com/aevon-lab/primstats/internal/core/stats"
	"github.com/aevon-lab/primstats/internal/core/storage"
	"github.com/aevon-lab/primstats/internal/core/summary"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgNotFound       = "Accumulator not found"
	msgInternal       = "Internal server error"
)

// RecordRequest carries the values to record. Each entry is a JSON number,
// boolean or string; strings allow NaN, Inf and single characters.
type RecordRequest struct {
	Values []json.RawMessage `json:"values"`
}

// MergeRequest names the accumulator merged into the one in the path.
type MergeRequest struct {
	SourceID string `json:"source_id"`
}

// ListResponse is the body of GET /v1/accumulators.
type ListResponse struct {
	Accumulators []AccumulatorResponse `json:"accumulators"`
}

// apiError carries the structured HTTP error shape back to the handler.
type apiError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *apiError) Error() string {
	return e.message
}

func (s *Service) CreateHandler(c *gin.Context) {
	var req CreateRequest
	if apiErr := s.bindJSON(c, &req); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	resp, err := s.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, classify(err))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Service) ListHandler(c *gin.Context) {
	accs, err := s.List(c.Request.Context())
	if err != nil {
		writeError(c, classify(err))
		return
	}
	c.JSON(http.StatusOK, ListResponse{Accumulators: accs})
}

func (s *Service) GetHandler(c *gin.Context) {
	resp, err := s.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, classify(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Service) RecordHandler(c *gin.Context) {
	var req RecordRequest
	if apiErr := s.bindJSON(c, &req); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	tokens, err := tokensOf(req.Values)
	if err != nil {
		writeError(c, classify(err))
		return
	}

	resp, err := s.Record(c.Request.Context(), c.Param("id"), tokens)
	if err != nil {
		writeError(c, classify(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Service) MergeHandler(c *gin.Context) {
	var req MergeRequest
	if apiErr := s.bindJSON(c, &req); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	resp, err := s.Merge(c.Request.Context(), c.Param("id"), req.SourceID)
	if err != nil {
		writeError(c, classify(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Service) DeleteHandler(c *gin.Context) {
	if err := s.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, classify(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// bindJSON reads at most maxBodySizeBytes and decodes the body into dst.
func (s *Service) bindJSON(c *gin.Context, dst interface{}) *apiError {
	maxBytes := int64(s.maxBodySizeBytes)
	bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBytes+1))
	if err != nil {
		slog.Error("[Accumulator] Failed to read request body", "error", err)
		return &apiError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Accumulator] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return &apiError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("[Accumulator] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return nil
}

// tokensOf turns JSON values into parser tokens: strings are unquoted,
// numbers and booleans keep their literal text.
func tokensOf(values []json.RawMessage) ([]string, error) {
	tokens := make([]string, len(values))
	for i, raw := range values {
		raw = bytes.TrimSpace(raw)
		switch {
		case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
			return nil, fmt.Errorf("%w: value %d is null", summary.ErrInvalidValue, i)
		case raw[0] == '"':
			if err := json.Unmarshal(raw, &tokens[i]); err != nil {
				return nil, fmt.Errorf("%w: value %d: %v", summary.ErrInvalidValue, i, err)
			}
		case raw[0] == '{' || raw[0] == '[':
			return nil, fmt.Errorf("%w: value %d is not a primitive", summary.ErrInvalidValue, i)
		default:
			tokens[i] = string(raw)
		}
	}
	return tokens, nil
}

// classify maps service errors to HTTP errors.
func classify(err error) *apiError {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &apiError{statusCode: http.StatusNotFound, errorType: httperr.HttpNotFoundError, message: msgNotFound}
	case errors.Is(err, summary.ErrKindMismatch):
		return &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpKindMismatchError, message: err.Error()}
	case errors.Is(err, summary.ErrInvalidValue),
		errors.Is(err, summary.ErrValueOutOfRange),
		errors.Is(err, stats.ErrInvalidArgument):
		return &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpInvalidValueError, message: err.Error()}
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, summary.ErrUnknownKind),
		errors.Is(err, storage.ErrInvalidID):
		return &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpInvalidRequestError, message: err.Error()}
	}

	slog.Error("[Accumulator] Request failed", "error", err)
	return &apiError{statusCode: http.StatusInternalServerError, errorType: httperr.HttpInternalError, message: msgInternal}
}

// writeError serializes an apiError as the JSON HTTP response.
func writeError(c *gin.Context, err *apiError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
