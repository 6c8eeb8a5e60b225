package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/token"
)

// ContextKey is unexported-value typed so no other package can collide with our keys.
type ContextKey int

const (
	subjectKey ContextKey = iota
)

// Subject is the authenticated caller, taken from a verified token.
type Subject struct {
	ID    string
	Email string
}

// TokenValidator is the part of the token service the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware verifies the bearer token and stores the Subject in the request context.
// Requests without a valid token get 401 {message}.
func NewAuthMiddleware(tokens TokenValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeMessage(w, http.StatusUnauthorized, messages.AuthMissingToken)
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, messages.AuthInvalidToken)
				return
			}

			ctx := WithSubject(r.Context(), Subject{ID: claims.UserID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(prefix):])
	return raw, raw != ""
}

// WithSubject attaches the caller to ctx.
func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey, s)
}

// SubjectFromContext returns the caller stored by the auth middleware.
func SubjectFromContext(ctx context.Context) (Subject, bool) {
	s, ok := ctx.Value(subjectKey).(Subject)
	return s, ok
}

// RequireSubject returns the caller or an UnauthorizedError when the route was not gated.
func RequireSubject(ctx context.Context) (Subject, error) {
	s, ok := SubjectFromContext(ctx)
	if !ok || s.ID == "" {
		return Subject{}, apperror.NewUnauthorizedError(messages.AuthMissingToken)
	}
	return s, nil
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
