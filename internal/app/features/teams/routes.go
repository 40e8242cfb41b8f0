// internal/app/features/teams/routes.go
package teams

import (
	"github.com/go-chi/chi/v5"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Post("/{id}/members", h.HandleAddMember)
	return r
}
