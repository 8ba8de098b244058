package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/healthtrack/healthtrack-go/internal/middleware"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// envelope is the body of every non-auth response.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Count   *int `json:"count,omitempty"`
	Message any  `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func dataResponse(data any) envelope {
	return envelope{Success: true, Data: data}
}

func listResponse[T any](items []T) envelope {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return envelope{Success: true, Data: items, Count: &n}
}

func errorResponse(msg any) envelope {
	return envelope{Success: false, Message: msg}
}

// decodeJSON reads a JSON body into dst, writing the error response itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// currentUser returns the identity set by middleware.Authenticate.
func currentUser(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized to access this route"))
		return model.Identity{}, false
	}
	return identity, true
}

// action names the operation in ownership and lookup failures, e.g. "update" this "appointment".
type action struct {
	verb     string
	resource string
}

// writeServiceError translates a service error into the response for op.
func writeServiceError(w http.ResponseWriter, r *http.Request, op action, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.Debug("validation failed", "op", op.verb+" "+op.resource, "messages", verr.Messages)
		writeJSON(w, http.StatusBadRequest, errorResponse(verr.Messages))
	case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrMissingCredentials):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusUnauthorized, errorResponse(fmt.Sprintf("not authorized to %s this %s", op.verb, op.resource)))
	case errors.Is(err, service.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorResponse(fmt.Sprintf("invalid %s id format", op.resource)))
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(op.resource+" not found"))
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error("store timeout", "op", op.verb+" "+op.resource, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse("Service Unavailable"))
	default:
		slog.Error("request failed", "op", op.verb+" "+op.resource, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server Error"))
	}
}
