package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/marqlabs/marq/internal/httpserver/deps"
	"github.com/marqlabs/marq/internal/httpserver/handlers"
	"github.com/marqlabs/marq/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Use(mw.Auth(d.Tokens, d.Users, d.Logger))
		r.Post("/", handlers.CreateBookmark(d))
		r.Get("/", handlers.ListBookmarks(d))
		r.Put("/reorder", handlers.ReorderBookmarks(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
	})
}
