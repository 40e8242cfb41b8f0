// internal/app/features/donations/routes.go
package donations

import (
	"github.com/go-chi/chi/v5"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleIntake)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)
	r.Get("/{id}/receipt", h.HandleReceipt)
	return r
}
