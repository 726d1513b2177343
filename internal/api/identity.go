package api

import (
	"context"
	"net/http"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/http/response"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the caller as asserted by the fronting auth layer. The server
// trusts the X-User-ID and X-User-Email headers; issuing and verifying
// credentials happens upstream.
type Identity struct {
	UserID string
	Email  string
}

// getIdentity returns the request identity from context. Only reachable
// after requireIdentity, so the zero value never escapes handlers.
func getIdentity(ctx context.Context) Identity {
	ident, _ := ctx.Value(identityKey).(Identity)
	return ident
}

// requireIdentity rejects requests without identity headers and caches the
// identity as a user row so foreign keys and invitation email matching have
// something to join against.
func (s *Server) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		email := r.Header.Get("X-User-Email")
		if userID == "" || email == "" {
			response.HandleError(w, s.logger,
				domainerrors.Unauthorized("identity headers required"))
			return
		}

		user := &domain.User{ID: userID, Email: email}
		if err := s.store.UpsertUser(r.Context(), user); err != nil {
			response.HandleError(w, s.logger, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{UserID: userID, Email: email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimit throttles requests per identity. Applied to mutating routes.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		ident := getIdentity(r.Context())
		if !s.limiter.Allow(ident.UserID) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
