// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	userstore "github.com/upcyclebuild/upcyclehub/internal/app/store/users"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, SessionMgr: sm, ErrLog: errLog}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleSignIn handles POST /login.
//
// A wrong email and a wrong password answer identically so the endpoint
// does not leak which accounts exist.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		uierrors.BadRequest(w, "Email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		uierrors.Unauthorized(w, "Invalid email or password.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, "database error loading user for sign-in", err, "A database error occurred.")
		return
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		uierrors.Unauthorized(w, "Invalid email or password.")
		return
	}

	su := &auth.SessionUser{ID: u.ID.Hex(), Email: u.Email, Name: u.FirstName + " " + u.LastName}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, "session save failed on sign-in", err, "Could not start a session.")
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", su.ID))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sessionResponse{ID: su.ID, Email: su.Email, Name: su.Name})
}
