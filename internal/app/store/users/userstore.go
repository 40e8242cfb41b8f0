// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/normalize"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("an account with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new account document. Email is normalized and the
// folded form enforces uniqueness via the email_ci index.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	if u.Organizations == nil {
		u.Organizations = []models.OrgMembership{}
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks a user up by exact-match normalized email. Returns
// mongo.ErrNoDocuments when nobody matches.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateProfile overwrites the settings-screen fields: username, first
// and last name, and the full denormalized organizations list.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, username, firstName, lastName string, orgs []models.OrgMembership) error {
	if orgs == nil {
		orgs = []models.OrgMembership{}
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"username":      username,
		"firstName":     firstName,
		"lastName":      lastName,
		"organizations": orgs,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// AddOrganization appends a membership entry to the user's organizations
// array. There is no referential check against the organizations
// collection and no dedup; integrity is by convention.
func (s *Store) AddOrganization(ctx context.Context, id primitive.ObjectID, m models.OrgMembership) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"organizations": m},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// AddTeamID unions a team id onto the user's teamIds array. $addToSet
// creates the field if it does not exist yet.
func (s *Store) AddTeamID(ctx context.Context, id primitive.ObjectID, teamID string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"teamIds": teamID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
