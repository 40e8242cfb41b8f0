// internal/app/features/events/handler.go
package events

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	eventstore "github.com/upcyclebuild/upcyclehub/internal/app/store/events"
	teamstore "github.com/upcyclebuild/upcyclehub/internal/app/store/teams"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/agenda"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
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

	mu     sync.Mutex
	cached map[string]*agenda.Agenda
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog, cached: make(map[string]*agenda.Agenda)}
}

// HandleAgenda handles GET /events and returns the signed-in user's
// agenda buckets. The agenda is cached per user and patched in place by
// the mutation handlers below, so repeat reads skip the database.
func (h *Handler) HandleAgenda(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.cached[su.ID]
	if !ok {
		events, err := eventstore.New(h.DB).ListByUser(ctx, su.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, "database error listing events", err, "Could not load the agenda.")
			return
		}
		a = agenda.Group(events)
		h.cached[su.ID] = a
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

type addEventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Hour        string `json:"hour"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	TeamName    string `json:"teamName"`
}

// HandleAdd handles POST /events. When the request names a team, the
// event id is linked onto that team's eventIds; a team-name miss or a
// link failure is logged and the event stands on its own.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	var req addEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Date = strings.TrimSpace(req.Date)
	req.Hour = strings.TrimSpace(req.Hour)
	req.Duration = strings.TrimSpace(req.Duration)
	if req.Title == "" || req.Date == "" || req.Hour == "" || req.Duration == "" {
		uierrors.BadRequest(w, "Title, date, hour, and duration are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev := models.Event{
		UserID:      su.ID,
		Title:       req.Title,
		Date:        req.Date,
		Hour:        req.Hour,
		Duration:    req.Duration,
		Description: req.Description,
		TeamName:    strings.TrimSpace(req.TeamName),
	}

	inserted, err := eventstore.New(h.DB).Insert(ctx, ev)
	if err != nil {
		h.ErrLog.LogServerError(w, "database error inserting event", err, "Could not save the event.")
		return
	}

	if inserted.TeamName != "" {
		h.linkToTeam(ctx, inserted)
	}

	h.mu.Lock()
	if a, ok := h.cached[su.ID]; ok {
		a.Add(inserted.Date, inserted)
	}
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(inserted)
}

// linkToTeam attaches the event id to the named team. Best effort: the
// event document is already committed and is not rolled back on a miss.
func (h *Handler) linkToTeam(ctx context.Context, ev models.Event) {
	team, err := teamstore.New(h.DB).GetByName(ctx, ev.TeamName)
	if err == mongo.ErrNoDocuments {
		h.Log.Warn("event references unknown team",
			zap.String("event_id", ev.ID.Hex()),
			zap.String("team_name", ev.TeamName))
		return
	}
	if err != nil {
		h.Log.Warn("team lookup failed while linking event", zap.Error(err))
		return
	}
	if err := teamstore.New(h.DB).AppendEventID(ctx, team.ID, ev.ID.Hex()); err != nil {
		h.Log.Warn("event link to team failed",
			zap.String("event_id", ev.ID.Hex()),
			zap.String("team_id", team.ID.Hex()),
			zap.Error(err))
	}
}

type removeEventRequest struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

// HandleRemove handles DELETE /events. Deletion is keyed by date and
// title, not id, and removes every event of the user that matches both.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	var req removeEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	if req.Date == "" || req.Title == "" {
		uierrors.BadRequest(w, "Date and title are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := eventstore.New(h.DB).DeleteByUserDateTitle(ctx, su.ID, req.Date, req.Title)
	if err != nil {
		h.ErrLog.LogServerError(w, "database error deleting events", err, "Could not delete the event.")
		return
	}

	h.mu.Lock()
	if a, ok := h.cached[su.ID]; ok {
		a.Remove(req.Date, req.Title)
	}
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted})
}

// HandleUpdate handles PATCH /events/{id}. Only the fields present in
// the body change; a date change is out of scope for a patch.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.BadRequest(w, "A valid event id is required.")
		return
	}

	var patch agenda.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	if patch.IsEmpty() {
		uierrors.BadRequest(w, "No fields to update.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := eventstore.New(h.DB).UpdateFields(ctx, oid, su.ID, patch)
	if err != nil {
		h.ErrLog.LogServerError(w, "database error updating event", err, "Could not update the event.")
		return
	}
	if matched == 0 {
		uierrors.NotFound(w, "Event not found.")
		return
	}

	h.mu.Lock()
	if a, ok := h.cached[su.ID]; ok {
		if !a.Patch(oid.Hex(), patch) {
			// Cache drifted from the store; rebuild on next read.
			delete(h.cached, su.ID)
		}
	}
	h.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}
