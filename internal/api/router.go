package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/crewboard/internal/boardservice"
	"github.com/starford/crewboard/internal/directory"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *boardservice.Service, dir *directory.Directory, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, dir)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/records", h.ListRecords)
	r.Post("/records/{id}/delete-requests", h.RequestDelete)

	r.Route("/form", func(r chi.Router) {
		r.Get("/", h.GetForm)
		r.Put("/fields/{name}", h.SetField)
		r.Post("/edit/{id}", h.BeginEdit)
		r.Delete("/edit", h.CancelEdit)
		r.Post("/commit", h.Commit)
	})

	r.Post("/delete-requests/{token}", h.ConfirmDelete)
	r.Delete("/delete-requests/{token}", h.CancelDelete)

	r.Post("/sort", h.Sort)

	r.Get("/message", h.GetMessage)
	r.Delete("/message", h.DismissMessage)

	r.Get("/directory", h.Directory)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
