package userstore

import (
	"testing"

	"github.com/upcyclebuild/upcyclehub/internal/app/system/indexes"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"github.com/upcyclebuild/upcyclehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func ensureEmailIndex(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to ensure indexes: %v", err)
	}
}

func TestCreate_DuplicateEmailRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	ensureEmailIndex(t, db)

	if _, err := s.Create(ctx, models.User{Email: "pat@example.com"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := s.Create(ctx, models.User{Email: "PAT@example.com"})
	if err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail for case-variant email, got %v", err)
	}
}

func TestGetByEmail_IsCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	created, err := s.Create(ctx, models.User{Email: "Pat@Example.com", FirstName: "Pat"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Email != "pat@example.com" {
		t.Errorf("stored email must be normalized, got %q", created.Email)
	}

	got, err := s.GetByEmail(ctx, "  PAT@EXAMPLE.COM ")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != created.ID {
		t.Error("lookup returned a different user")
	}
}

func TestGetByEmail_UnknownReturnsNoDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := New(db).GetByEmail(ctx, "nobody@example.com")
	if err != mongo.ErrNoDocuments {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestAddOrganization_AllowsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	u, err := s.Create(ctx, models.User{Email: "pat@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	m := models.OrgMembership{OrgID: "org1", OrgName: "ReUse Depot", Role: "member"}
	for i := 0; i < 2; i++ {
		if err := s.AddOrganization(ctx, u.ID, m); err != nil {
			t.Fatalf("add organization failed: %v", err)
		}
	}

	got, err := s.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.Organizations) != 2 {
		t.Errorf("membership push must not dedup, got %d entries", len(got.Organizations))
	}
}

func TestAddTeamID_Unions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	u, err := s.Create(ctx, models.User{Email: "pat@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.AddTeamID(ctx, u.ID, "team1"); err != nil {
			t.Fatalf("add team id failed: %v", err)
		}
	}
	if err := s.AddTeamID(ctx, u.ID, "team2"); err != nil {
		t.Fatalf("add team id failed: %v", err)
	}

	got, err := s.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.TeamIDs) != 2 {
		t.Errorf("teamIds must union, got %v", got.TeamIDs)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	u, err := s.Create(ctx, models.User{Email: "pat@example.com", FirstName: "Pat"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	orgs := []models.OrgMembership{{OrgID: "org1", OrgName: "ReUse Depot", Role: "admin"}}
	if err := s.UpdateProfile(ctx, u.ID, "patr", "Patricia", "Reyes", orgs); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Username != "patr" || got.FirstName != "Patricia" || got.LastName != "Reyes" {
		t.Errorf("profile fields not updated: %+v", got)
	}
	if len(got.Organizations) != 1 || got.Organizations[0].Role != "admin" {
		t.Errorf("organizations not updated: %+v", got.Organizations)
	}
}
