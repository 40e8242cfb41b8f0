package profile

import (
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	userstore "github.com/upcyclebuild/upcyclehub/internal/app/store/users"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"github.com/upcyclebuild/upcyclehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(db *mongo.Database) *Handler {
	logger := zap.NewNop()
	return NewHandler(db, errorsfeature.NewErrorLogger(logger), logger)
}

func TestHandleGet_ReturnsProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "pat@example.com", "password123")

	h := newTestHandler(db)
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req = testutil.WithUser(req, testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleGet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp profileResponse
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Email != "pat@example.com" || resp.ID != u.ID.Hex() {
		t.Errorf("unexpected profile: %+v", resp)
	}
}

func TestHandleUpdate_ChangesNameFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "pat@example.com", "password123")

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPut, "/profile", map[string]string{
		"username":  "patr",
		"firstName": "Patricia",
		"lastName":  "Reyes",
	})
	req = testutil.WithUser(req, testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Username != "patr" || got.FirstName != "Patricia" {
		t.Errorf("profile not persisted: %+v", got)
	}
}

func TestHandleUpdate_OverwritesOrganizationsWhenSent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUserWithOrgs(ctx, "pat@example.com", []models.OrgMembership{
		{OrgID: "org1", OrgName: "ReUse Depot", Role: "member"},
		{OrgID: "org2", OrgName: "Green Cycle", Role: "member"},
	})

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPut, "/profile", map[string]any{
		"username":  "patr",
		"firstName": "Patricia",
		"lastName":  "Reyes",
		"organizations": []models.OrgMembership{
			{OrgID: "org2", OrgName: "Green Cycle", Role: "member"},
		},
	})
	req = testutil.WithUser(req, testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.Organizations) != 1 || got.Organizations[0].OrgID != "org2" {
		t.Errorf("membership list not overwritten: %+v", got.Organizations)
	}
}

func TestHandleUpdate_AbsentOrganizationsKeepsMemberships(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUserWithOrgs(ctx, "pat@example.com", []models.OrgMembership{
		{OrgID: "org1", OrgName: "ReUse Depot", Role: "member"},
	})

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPut, "/profile", map[string]string{
		"username": "patr",
	})
	req = testutil.WithUser(req, testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.Organizations) != 1 || got.Organizations[0].OrgID != "org1" {
		t.Errorf("memberships must survive an update without the field: %+v", got.Organizations)
	}
}

func TestHandleCreateOrg_MakesCreatorAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "founder@example.com", "password123")

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/profile/orgs/create",
		map[string]string{"name": "ReUse Depot"})
	req = testutil.WithUser(req, testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleCreateOrg(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.Organizations) != 1 || got.Organizations[0].Role != "admin" {
		t.Errorf("creator must become admin: %+v", got.Organizations)
	}
	if !got.IsOrgAdmin(got.Organizations[0].OrgID) {
		t.Error("IsOrgAdmin must report true for the new org")
	}
}

func TestHandleJoinOrg_UnknownOrgIs404(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "pat@example.com", "password123")

	h := newTestHandler(db)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/profile/orgs",
		map[string]string{"orgId": "64f000000000000000000000", "role": "member"})
	req = testutil.WithUser(req, testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Name: "Test"})
	rec := httptest.NewRecorder()

	h.HandleJoinOrg(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.Organizations) != 0 {
		t.Errorf("failed join must not add a membership: %+v", got.Organizations)
	}
}

func TestHandleSearchOrgs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateOrganization(ctx, "ReUse Depot")
	fx.CreateOrganization(ctx, "Green Cycle")

	h := newTestHandler(db)
	req := httptest.NewRequest(http.MethodGet, "/profile/orgs/search?q=re", nil)
	req = testutil.WithUser(req, testutil.SignedInUser())
	rec := httptest.NewRecorder()

	h.HandleSearchOrgs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []orgResponse
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp) != 1 || resp[0].Name != "ReUse Depot" {
		t.Errorf("unexpected search result: %+v", resp)
	}
}
