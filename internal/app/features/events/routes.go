// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.HandleAgenda)
	r.Post("/", h.HandleAdd)
	r.Delete("/", h.HandleRemove)
	r.Patch("/{id}", h.HandleUpdate)
	return r
}
