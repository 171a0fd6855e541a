package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

var errRouteNotFound = fmt.Errorf("route: %w", types.ErrNotFound)

// errorResponse is the body of every error reply.
type errorResponse struct {
	Response   string `json:"response"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrReferenced):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError replies with the status and message for err. Unexpected errors
// are logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	var msg string
	switch status {
	case http.StatusNotFound:
		msg = "Resource not found"
	case http.StatusInternalServerError:
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		msg = "Internal server error"
	default:
		msg = err.Error()
	}
	writeErrorMessage(w, status, msg)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Response: "error", Message: msg, StatusCode: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON object from the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body must be a JSON object", types.ErrInvalidData)
		}
		return fmt.Errorf("%w: malformed JSON: %v", types.ErrInvalidData, err)
	}
	return nil
}

// pathID parses the named numeric URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, chi.URLParam(r, name))
	}
	return id, nil
}

// bodyRef turns a missing entity named in a request body into a 400; a 404
// is reserved for the resource in the URL.
func bodyRef(err error) error {
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return err
}
