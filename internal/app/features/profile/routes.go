// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.HandleGet)
	r.Put("/", h.HandleUpdate)
	r.Get("/orgs/search", h.HandleSearchOrgs)
	r.Post("/orgs", h.HandleJoinOrg)
	r.Post("/orgs/create", h.HandleCreateOrg)
	return r
}
