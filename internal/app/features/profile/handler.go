// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	organizationstore "github.com/upcyclebuild/upcyclehub/internal/app/store/organizations"
	userstore "github.com/upcyclebuild/upcyclehub/internal/app/store/users"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/normalize"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/timeouts"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const orgSearchLimit = 20

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog}
}

type profileResponse struct {
	ID            string                 `json:"id"`
	Email         string                 `json:"email"`
	Username      string                 `json:"username"`
	FirstName     string                 `json:"firstName"`
	LastName      string                 `json:"lastName"`
	Organizations []models.OrgMembership `json:"organizations"`
	TeamIDs       []string               `json:"teamIds"`
}

func toResponse(u models.User) profileResponse {
	orgs := u.Organizations
	if orgs == nil {
		orgs = []models.OrgMembership{}
	}
	teamIDs := u.TeamIDs
	if teamIDs == nil {
		teamIDs = []string{}
	}
	return profileResponse{
		ID:            u.ID.Hex(),
		Email:         u.Email,
		Username:      u.Username,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Organizations: orgs,
		TeamIDs:       teamIDs,
	}
}

func (h *Handler) loadCurrent(ctx context.Context, r *http.Request) (models.User, bool) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return models.User{}, false
	}
	oid, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		return models.User{}, false
	}
	u, err := userstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		return models.User{}, false
	}
	return u, true
}

// HandleGet handles GET /profile and returns the signed-in user's
// profile document.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, ok := h.loadCurrent(ctx, r)
	if !ok {
		uierrors.NotFound(w, "Profile not found.")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toResponse(u))
}

type updateRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Pointer so an absent field keeps the stored memberships while an
	// explicit list, including an empty one, overwrites them. Removing a
	// membership is done by sending the list without it.
	Organizations *[]models.OrgMembership `json:"organizations"`
}

// HandleUpdate handles PUT /profile. The settings screen saves the name
// fields and the full membership list in one write; email has its own
// flow.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, ok := h.loadCurrent(ctx, r)
	if !ok {
		uierrors.NotFound(w, "Profile not found.")
		return
	}

	username := strings.TrimSpace(req.Username)
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	orgs := u.Organizations
	if req.Organizations != nil {
		orgs = *req.Organizations
	}

	if err := userstore.New(h.DB).UpdateProfile(ctx, u.ID, username, first, last, orgs); err != nil {
		h.ErrLog.LogServerError(w, "database error updating profile", err, "Could not save the profile.")
		return
	}

	u.Username = username
	u.FirstName = first
	u.LastName = last
	u.Organizations = orgs
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toResponse(u))
}

type orgResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandleSearchOrgs handles GET /profile/orgs/search?q=. An empty query
// returns an empty list rather than the whole collection.
func (h *Handler) HandleSearchOrgs(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	orgs, err := organizationstore.New(h.DB).SearchByNamePrefix(ctx, q, orgSearchLimit)
	if err != nil {
		h.ErrLog.LogServerError(w, "database error searching organizations", err, "Could not search organizations.")
		return
	}

	out := make([]orgResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, orgResponse{ID: org.ID.Hex(), Name: org.Name})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

type joinOrgRequest struct {
	OrgID string `json:"orgId"`
	Role  string `json:"role"`
}

// HandleJoinOrg handles POST /profile/orgs. The membership entry
// denormalizes the organization name onto the user document so the
// teams screen can render without a second lookup.
func (h *Handler) HandleJoinOrg(w http.ResponseWriter, r *http.Request) {
	var req joinOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.OrgID))
	if err != nil {
		uierrors.BadRequest(w, "A valid organization id is required.")
		return
	}
	role := normalize.Role(req.Role)
	if role == "" {
		role = "member"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, ok := h.loadCurrent(ctx, r)
	if !ok {
		uierrors.NotFound(w, "Profile not found.")
		return
	}

	org, err := organizationstore.New(h.DB).GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		uierrors.NotFound(w, "Organization not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, "database error loading organization", err, "Could not join the organization.")
		return
	}

	m := models.OrgMembership{OrgID: org.ID.Hex(), OrgName: org.Name, Role: role}
	if err := userstore.New(h.DB).AddOrganization(ctx, u.ID, m); err != nil {
		h.ErrLog.LogServerError(w, "database error adding membership", err, "Could not join the organization.")
		return
	}

	h.Log.Info("user joined organization",
		zap.String("user_id", u.ID.Hex()),
		zap.String("org_id", m.OrgID),
		zap.String("role", m.Role))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(m)
}

type createOrgRequest struct {
	Name string `json:"name"`
}

// HandleCreateOrg handles POST /profile/orgs/create. The creator is
// added to the new organization as an admin.
func (h *Handler) HandleCreateOrg(w http.ResponseWriter, r *http.Request) {
	var req createOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		uierrors.BadRequest(w, "Organization name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, ok := h.loadCurrent(ctx, r)
	if !ok {
		uierrors.NotFound(w, "Profile not found.")
		return
	}

	org, err := organizationstore.New(h.DB).Create(ctx, models.Organization{Name: name})
	if err != nil {
		if err == organizationstore.ErrDuplicateOrganization {
			uierrors.BadRequest(w, "An organization with that name already exists.")
			return
		}
		h.ErrLog.LogServerError(w, "database error creating organization", err, "Could not create the organization.")
		return
	}

	m := models.OrgMembership{OrgID: org.ID.Hex(), OrgName: org.Name, Role: "admin"}
	if err := userstore.New(h.DB).AddOrganization(ctx, u.ID, m); err != nil {
		h.ErrLog.LogServerError(w, "database error adding admin membership", err, "Organization created but membership failed.")
		return
	}

	h.Log.Info("organization created",
		zap.String("org_id", m.OrgID),
		zap.String("creator_id", u.ID.Hex()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(orgResponse{ID: org.ID.Hex(), Name: org.Name})
}
