// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jdavril/brocante/internal/common"
	"github.com/jdavril/brocante/internal/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// TokenResolver resolves a bearer token to the identity it belongs to.
// Implementations return common.ErrNotFound when no user carries the token.
type TokenResolver interface {
	FindByToken(ctx context.Context, token string) (*models.Identity, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It expects an "Authorization: Bearer <token>" header, resolves the token
// to a user projection (id and account only) and stores it in the request
// context, so downstream handlers can read it with IdentityFromContext.
// A missing or malformed header, or a token matching no user, ends the
// request with 401.
func BearerAuth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				deny(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				deny(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			identity, err := resolver.FindByToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					deny(w, http.StatusUnauthorized, "invalid token")
					return
				}
				deny(w, http.StatusInternalServerError, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}

// ContextWithIdentity returns a copy of ctx carrying the identity.
func ContextWithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext extracts the authenticated identity from the request
// context. Returns nil if the request did not pass BearerAuth.
func IdentityFromContext(ctx context.Context) *models.Identity {
	val := ctx.Value(identityKey)
	if identity, ok := val.(*models.Identity); ok {
		return identity
	}
	return nil
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
