package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// IdentityLookup loads the current state of a user.
type IdentityLookup interface {
	GetUser(ctx context.Context, userID string) (model.Identity, error)
}

// Authenticate returns middleware that requires a valid Bearer token naming an
// existing user. The resolved identity is stored in the request context.
func Authenticate(tokens TokenVerifier, users IdentityLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "not authorized to access this route (no token)")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				slog.Debug("rejected bearer token", "error", err)
				writeJSONError(w, http.StatusUnauthorized, "not authorized to access this route (token invalid)")
				return
			}

			identity, err := users.GetUser(r.Context(), userID)
			switch {
			case errors.Is(err, service.ErrUserNotFound):
				writeJSONError(w, http.StatusUnauthorized, "not authorized to access this route (user not found)")
				return
			case errors.Is(err, context.DeadlineExceeded):
				slog.Error("resolving identity", "user_id", userID, "error", err)
				writeJSONError(w, http.StatusServiceUnavailable, "Service Unavailable")
				return
			case err != nil:
				slog.Error("resolving identity", "user_id", userID, "error", err)
				writeJSONError(w, http.StatusInternalServerError, "Server Error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// IdentityFromContext extracts the authenticated user from the request context.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}
