package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/phonebook/internal/contactservice"
)

// NewRouter creates a chi router with the directory routes mounted in
// json-server layout. authEnabled controls whether Bearer token auth is
// enforced. sseHandler, if non-nil, is mounted at GET /events inside the
// auth group.
func NewRouter(svc *contactservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Route("/persons", func(r chi.Router) {
		r.Get("/", h.ListContacts)
		r.Post("/", h.CreateContact)
		r.Get("/{id}", h.GetContact)
		r.Put("/{id}", h.UpdateContact)
		r.Delete("/{id}", h.DeleteContact)
	})

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
