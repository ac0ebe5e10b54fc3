package mw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marqlabs/marq/internal/auth"
	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/logger"
	"github.com/marqlabs/marq/internal/store/memory"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := memory.NewUsers()

	user := &domain.User{Email: "user@example.com", Password: "hash"}
	if err := users.Insert(context.Background(), user); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	validToken, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// token for an account that no longer exists
	orphanToken, err := tokens.Issue(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	foreignToken, err := auth.NewTokenManager("other-secret", time.Hour).Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantOwner  bool
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer " + validToken,
			wantStatus: http.StatusOK,
			wantOwner:  true,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong auth scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with another secret",
			header:     "Bearer " + foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token for deleted account",
			header:     "Bearer " + orphanToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner primitive.ObjectID
			var ownerSet bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOwner, ownerSet = OwnerFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(tokens, users, logger.Nop())(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ownerSet != tt.wantOwner {
				t.Errorf("owner in context = %v, want %v", ownerSet, tt.wantOwner)
			}
			if tt.wantOwner && gotOwner != user.ID {
				t.Errorf("owner = %v, want %v", gotOwner, user.ID)
			}
		})
	}
}

func TestOwnerFromContextMissing(t *testing.T) {
	if _, ok := OwnerFromContext(context.Background()); ok {
		t.Errorf("OwnerFromContext() reported an owner on an empty context")
	}
}
