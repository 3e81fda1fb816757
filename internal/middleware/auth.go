// Package middleware provides HTTP middlewares for authentication and
// request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"bookmarker/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionResolver maps a bearer token to the authenticated user.
type SessionResolver interface {
	// ResolveSession verifies the token and returns the bound user's
	// public projection, or models.ErrInvalidToken.
	ResolveSession(ctx context.Context, tokenString string) (models.PublicUser, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It reads the Authorization header, verifies the token through the
// resolver and stores the resolved user in the request context, so it can
// be used downstream as the acting owner. Requests without a valid token
// are rejected with 401 before reaching any handler.
func BearerAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := resolver.ResolveSession(r.Context(), tokenString)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// UserFromContext extracts the authenticated user from the request context.
// ok is false when the request did not pass through BearerAuth.
func UserFromContext(ctx context.Context) (models.PublicUser, bool) {
	user, ok := ctx.Value(userKey).(models.PublicUser)
	return user, ok
}

// WithUser returns a context carrying the given user, as BearerAuth would
// have stored it. Intended for tests.
func WithUser(ctx context.Context, user models.PublicUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}
