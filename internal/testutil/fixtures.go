package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test account with the given email and password.
// Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, email, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:            primitive.NewObjectID(),
		Email:         email,
		EmailCI:       text.Fold(email),
		Username:      "testuser",
		FirstName:     "Test",
		LastName:      "User",
		PasswordHash:  hash,
		Organizations: []models.OrgMembership{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateUserWithOrgs creates a test account that already belongs to the
// given organizations.
func (f *Fixtures) CreateUserWithOrgs(ctx context.Context, email string, orgs []models.OrgMembership) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, email, "password123")
	u.Organizations = orgs
	_, err := f.db.Collection("users").UpdateByID(ctx, u.ID, bson.M{
		"$set": bson.M{"organizations": orgs},
	})
	if err != nil {
		f.t.Fatalf("failed to set test user organizations: %v", err)
	}
	return u
}

// CreateOrganization creates a test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateTeam creates a test team in the given organization.
func (f *Fixtures) CreateTeam(ctx context.Context, orgID, name string, members []models.TeamMember) models.Team {
	f.t.Helper()

	if members == nil {
		members = []models.TeamMember{}
	}
	now := time.Now().UTC()
	team := models.Team{
		ID:        primitive.NewObjectID(),
		OrgID:     orgID,
		Name:      name,
		Members:   members,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateEvent creates a test event for the given user on the given date.
func (f *Fixtures) CreateEvent(ctx context.Context, uid, date, title string) models.Event {
	f.t.Helper()

	ev := models.Event{
		ID:     primitive.NewObjectID(),
		UserID: uid,
		Title:  title,
		Date:   date,
		Hour:   "10:00",
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return ev
}

// CreateDonation creates an itemized-shape test donation.
func (f *Fixtures) CreateDonation(ctx context.Context, donorName string, items []models.Item) models.Donation {
	f.t.Helper()

	d := models.Donation{
		ID:           primitive.NewObjectID(),
		DonorName:    donorName,
		Email:        "donor@test.com",
		DonationDate: time.Now().UTC().Format(time.RFC3339),
		Items:        items,
	}

	if _, err := f.db.Collection("donations").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test donation: %v", err)
	}
	return d
}

// CreateLegacyDonation creates a legacy single-item-shape test donation.
func (f *Fixtures) CreateLegacyDonation(ctx context.Context, donorName, description, status string) models.Donation {
	f.t.Helper()

	qty := "1"
	d := models.Donation{
		ID:              primitive.NewObjectID(),
		DonorName:       donorName,
		Email:           "donor@test.com",
		DonationDate:    time.Now().UTC().Format(time.RFC3339),
		ItemDescription: &description,
		Quantity:        &qty,
		Status:          &status,
	}

	if _, err := f.db.Collection("donations").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create legacy test donation: %v", err)
	}
	return d
}
