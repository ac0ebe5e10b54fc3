package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/httpserver/deps"
	"github.com/marqlabs/marq/internal/logger"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and answers with its credentials.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		creds, err := d.Auth.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrEmailTaken):
				writeError(w, http.StatusBadRequest, domain.ErrEmailTaken.Error())
			case errors.Is(err, domain.ErrInvalidCredentials):
				writeError(w, http.StatusBadRequest, "email and password are required")
			default:
				d.Logger.Error("register failed", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "something went wrong")
			}
			return
		}

		writeJSON(w, http.StatusCreated, creds)
	}
}

// Login verifies credentials and answers with a fresh token.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		creds, err := d.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
				return
			}
			d.Logger.Error("login failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		writeJSON(w, http.StatusOK, creds)
	}
}
