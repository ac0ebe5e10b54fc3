package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/marqlabs/marq/internal/httpserver/deps"
	"github.com/marqlabs/marq/internal/httpserver/handlers"
)

func init() { Register(registerUsers) }

func registerUsers(r chi.Router, d deps.Deps) {
	r.Post("/api/users", handlers.Register(d))
	r.Post("/api/users/login", handlers.Login(d))
}
