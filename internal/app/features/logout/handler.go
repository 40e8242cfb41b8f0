// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, SessionMgr: sm}
}

func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if su, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("user_id", su.ID))
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("session clear failed on sign-out", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleSignOut)
	return r
}
