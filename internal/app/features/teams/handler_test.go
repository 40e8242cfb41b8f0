package teams

import (
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	teamstore "github.com/upcyclebuild/upcyclehub/internal/app/store/teams"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"github.com/upcyclebuild/upcyclehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(db *mongo.Database) *Handler {
	logger := zap.NewNop()
	return NewHandler(db, errorsfeature.NewErrorLogger(logger), logger)
}

func TestHandleAddMember_UnknownEmailIs404AndNoWrite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	team := fx.CreateTeam(ctx, "org1", "Sorters", nil)

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/teams/"+team.ID.Hex()+"/members",
		map[string]string{"email": "ghost@example.com", "role": "member"})
	req = testutil.WithUser(req, testutil.SignedInUser())
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleAddMember(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown email, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := teamstore.New(db).GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.Members) != 0 {
		t.Errorf("a failed lookup must not mutate the team, got %d members", len(got.Members))
	}
}

func TestHandleAddMember_AddsMemberAndLinksTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	team := fx.CreateTeam(ctx, "org1", "Sorters", nil)
	member := fx.CreateUser(ctx, "vol@example.com", "password123")

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/teams/"+team.ID.Hex()+"/members",
		map[string]string{"email": "VOL@example.com", "role": "Member"})
	req = testutil.WithUser(req, testutil.SignedInUser())
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleAddMember(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	gotTeam, err := teamstore.New(db).GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("reload team failed: %v", err)
	}
	if len(gotTeam.Members) != 1 || gotTeam.Members[0].UID != member.ID.Hex() {
		t.Errorf("member not appended: %+v", gotTeam.Members)
	}
	if gotTeam.Members[0].Role != "member" {
		t.Errorf("role must be normalized, got %q", gotTeam.Members[0].Role)
	}

	var gotUser models.User
	err = db.Collection("users").FindOne(ctx, bson.M{"_id": member.ID}).Decode(&gotUser)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if len(gotUser.TeamIDs) != 1 || gotUser.TeamIDs[0] != team.ID.Hex() {
		t.Errorf("teamIds not linked: %v", gotUser.TeamIDs)
	}
}

func TestHandleCreate_NonAdminForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUserWithOrgs(ctx, "vol@example.com", []models.OrgMembership{
		{OrgID: "org1", OrgName: "ReUse Depot", Role: "member"},
	})

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/teams",
		map[string]string{"orgId": "org1", "name": "Sorters"})
	req = testutil.WithUser(req, testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCreate_AdminSucceeds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUserWithOrgs(ctx, "lead@example.com", []models.OrgMembership{
		{OrgID: "org1", OrgName: "ReUse Depot", Role: "admin"},
	})

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/teams",
		map[string]string{"orgId": "org1", "name": "Sorters"})
	req = testutil.WithUser(req, testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp teamResponse
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Name != "Sorters" || resp.OrgID != "org1" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Members) != 0 {
		t.Errorf("a new team must start with no members: %+v", resp.Members)
	}
	if resp.IsMember {
		t.Error("creating a team must not make the creator a member")
	}

	oid, err := primitive.ObjectIDFromHex(resp.ID)
	if err != nil {
		t.Fatalf("response id is not an object id: %v", err)
	}
	got, err := teamstore.New(db).GetByID(ctx, oid)
	if err != nil {
		t.Fatalf("reload team failed: %v", err)
	}
	if len(got.Members) != 0 {
		t.Errorf("stored team must have an empty member list: %+v", got.Members)
	}

	var gotUser models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": u.ID}).Decode(&gotUser); err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if len(gotUser.TeamIDs) != 0 {
		t.Errorf("creating a team must not link it onto the creator: %v", gotUser.TeamIDs)
	}
}

func TestHandleList_MemberTeamsFirstThenAlphabetical(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUserWithOrgs(ctx, "vol@example.com", []models.OrgMembership{
		{OrgID: "org1", OrgName: "ReUse Depot", Role: "member"},
	})
	uid := u.ID.Hex()

	fx.CreateTeam(ctx, "org1", "Zeta Crew", []models.TeamMember{{UID: uid, Role: "member"}})
	fx.CreateTeam(ctx, "org1", "Alpha Crew", nil)
	fx.CreateTeam(ctx, "org1", "Beta Crew", []models.TeamMember{{UID: uid, Role: "member"}})

	h := newTestHandler(db)
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req = testutil.WithUser(req, testutil.TestUser{ID: uid, Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []teamResponse
	testutil.DecodeJSON(t, rec, &resp)
	want := []string{"Beta Crew", "Zeta Crew", "Alpha Crew"}
	if len(resp) != len(want) {
		t.Fatalf("expected %d teams, got %d", len(want), len(resp))
	}
	for i, w := range want {
		if resp[i].Name != w {
			t.Errorf("position %d: got %q, want %q", i, resp[i].Name, w)
		}
	}
}
