// internal/app/features/teams/handler.go
package teams

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	teamstore "github.com/upcyclebuild/upcyclehub/internal/app/store/teams"
	userstore "github.com/upcyclebuild/upcyclehub/internal/app/store/users"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/normalize"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/timeouts"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog}
}

type teamResponse struct {
	ID       string              `json:"id"`
	OrgID    string              `json:"orgId"`
	OrgName  string              `json:"orgName"`
	Name     string              `json:"name"`
	Members  []models.TeamMember `json:"members"`
	EventIDs []string            `json:"eventIds"`
	IsMember bool                `json:"isMember"`
}

func toResponse(t models.Team, orgName string, uid string) teamResponse {
	members := t.Members
	if members == nil {
		members = []models.TeamMember{}
	}
	eventIDs := t.EventIDs
	if eventIDs == nil {
		eventIDs = []string{}
	}
	return teamResponse{
		ID:       t.ID.Hex(),
		OrgID:    t.OrgID,
		OrgName:  orgName,
		Name:     t.Name,
		Members:  members,
		EventIDs: eventIDs,
		IsMember: t.HasMember(uid),
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

// HandleList handles GET /teams. The response merges the teams of every
// organization the user belongs to, with the user's own teams sorted
// ahead of the rest and ties broken alphabetically by name.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, ok := h.loadCurrent(ctx, r)
	if !ok {
		uierrors.NotFound(w, "Profile not found.")
		return
	}

	uid := u.ID.Hex()
	ts := teamstore.New(h.DB)
	out := []teamResponse{}
	for _, m := range u.Organizations {
		teams, err := ts.ListByOrg(ctx, m.OrgID)
		if err != nil {
			h.ErrLog.LogServerError(w, "database error listing teams", err, "Could not load teams.")
			return
		}
		for _, t := range teams {
			out = append(out, toResponse(t, m.OrgName, uid))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsMember != out[j].IsMember {
			return out[i].IsMember
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

type createTeamRequest struct {
	OrgID string `json:"orgId"`
	Name  string `json:"name"`
}

// HandleCreate handles POST /teams. Only an admin of the target
// organization may create a team there. The team starts with an empty
// member list; the creator joins through the add-member flow like
// anyone else.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	req.OrgID = strings.TrimSpace(req.OrgID)
	req.Name = strings.TrimSpace(req.Name)
	if req.OrgID == "" || req.Name == "" {
		uierrors.BadRequest(w, "Organization id and team name are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, ok := h.loadCurrent(ctx, r)
	if !ok {
		uierrors.NotFound(w, "Profile not found.")
		return
	}
	if !u.IsOrgAdmin(req.OrgID) {
		uierrors.Forbidden(w, "Only an organization admin can create teams.")
		return
	}

	uid := u.ID.Hex()
	t := models.Team{
		OrgID:   req.OrgID,
		Name:    req.Name,
		Members: []models.TeamMember{},
	}
	created, err := teamstore.New(h.DB).Create(ctx, t)
	if err != nil {
		if err == teamstore.ErrDuplicateTeamName {
			uierrors.BadRequest(w, "A team with that name already exists in the organization.")
			return
		}
		h.ErrLog.LogServerError(w, "database error creating team", err, "Could not create the team.")
		return
	}

	h.Log.Info("team created",
		zap.String("team_id", created.ID.Hex()),
		zap.String("org_id", created.OrgID),
		zap.String("creator_id", uid))

	orgName := ""
	for _, m := range u.Organizations {
		if m.OrgID == created.OrgID {
			orgName = m.OrgName
			break
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toResponse(created, orgName, uid))
}

type addMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleAddMember handles POST /teams/{id}/members. The member is looked
// up by email; an unknown email returns 404 and nothing is written. The
// member push does not deduplicate, while the teamIds union on the user
// document does, so re-adding someone grows only the member list.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.BadRequest(w, "A valid team id is required.")
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	email := normalize.Email(req.Email)
	if email == "" {
		uierrors.BadRequest(w, "Email is required.")
		return
	}
	role := normalize.Role(req.Role)
	if role == "" {
		role = "member"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ts := teamstore.New(h.DB)
	team, err := ts.GetByID(ctx, teamID)
	if err == mongo.ErrNoDocuments {
		uierrors.NotFound(w, "Team not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, "database error loading team", err, "Could not load the team.")
		return
	}

	us := userstore.New(h.DB)
	member, err := us.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		uierrors.NotFound(w, "No account found for that email.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, "database error looking up member", err, "Could not add the member.")
		return
	}

	memberUID := member.ID.Hex()
	if err := ts.AppendMember(ctx, team.ID, models.TeamMember{UID: memberUID, Role: role}); err != nil {
		h.ErrLog.LogServerError(w, "database error adding member", err, "Could not add the member.")
		return
	}
	if err := us.AddTeamID(ctx, member.ID, team.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, "database error linking team to user", err, "Could not add the member.")
		return
	}

	h.Log.Info("team member added",
		zap.String("team_id", team.ID.Hex()),
		zap.String("member_id", memberUID),
		zap.String("role", role))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(models.TeamMember{UID: memberUID, Role: role})
}
