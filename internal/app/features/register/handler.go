// internal/app/features/register/handler.go
package register

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	userstore "github.com/upcyclebuild/upcyclehub/internal/app/store/users"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/timeouts"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, SessionMgr: sm, ErrLog: errLog}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleRegister handles POST /register. A successful registration also
// starts a session for the new account.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		uierrors.BadRequest(w, "A valid email address is required.")
		return
	}
	if len(req.Password) < minPasswordLen {
		uierrors.BadRequest(w, "Password must be at least 8 characters.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, "password hash failed", err, "Could not create the account.")
		return
	}

	u := models.User{
		Email:        req.Email,
		Username:     strings.TrimSpace(req.Username),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := userstore.New(h.DB).Create(ctx, u)
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			uierrors.BadRequest(w, "An account with that email already exists.")
			return
		}
		h.ErrLog.LogServerError(w, "database error creating user", err, "Could not create the account.")
		return
	}

	su := &auth.SessionUser{ID: created.ID.Hex(), Email: created.Email, Name: created.FirstName + " " + created.LastName}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, "session save failed after registration", err, "Account created but sign-in failed.")
		return
	}

	h.Log.Info("user registered", zap.String("user_id", su.ID))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(registerResponse{ID: su.ID, Email: su.Email, Name: su.Name})
}
