// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateTeamName = errors.New("a team with this name already exists in the organization")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	if t.Members == nil {
		t.Members = []models.TeamMember{}
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, t)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateTeamName
		}
		return models.Team{}, err
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// GetByName finds a team by exact name match across all organizations.
// Event creation uses this to link an event to its team; the name is
// whatever the user typed, so a miss is ordinary.
func (s *Store) GetByName(ctx context.Context, name string) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"name": name}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// ListByOrg returns all teams with the given orgId.
func (s *Store) ListByOrg(ctx context.Context, orgID string) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, bson.M{"orgId": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// AppendMember pushes a member entry onto the team's member array.
// There is no dedup check; adding the same uid twice produces two
// entries.
func (s *Store) AppendMember(ctx context.Context, id primitive.ObjectID, m models.TeamMember) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"members": m},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// AppendEventID unions an event id onto the team's eventIds array.
func (s *Store) AppendEventID(ctx context.Context, id primitive.ObjectID, eventID string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"eventIds": eventID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
