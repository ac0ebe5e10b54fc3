package mw

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marqlabs/marq/internal/auth"
	"github.com/marqlabs/marq/internal/logger"
	"github.com/marqlabs/marq/internal/store"
)

type contextKey int

const ownerKey contextKey = iota

// OwnerFromContext returns the authenticated owner placed in the
// request context by Auth.
func OwnerFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(ownerKey).(primitive.ObjectID)
	return id, ok
}

// WithOwner injects an owner identity into ctx. Exposed for tests.
func WithOwner(ctx context.Context, owner primitive.ObjectID) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// Auth guards routes with bearer-token authentication. The token is
// verified, the account looked up, and the owner identity injected
// into the request context. Any failure answers 401.
func Auth(tokens *auth.TokenManager, users store.UserStore, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "not authorized, no token")
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debug("token verification failed", logger.Error(err))
				unauthorized(w, "not authorized, token failed")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				log.Debug("token user lookup failed",
					logger.String("user_id", userID.Hex()),
					logger.Error(err))
				unauthorized(w, "not authorized, token failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), user.ID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"` + msg + `"}`))
}
