// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"

	"github.com/upcyclebuild/upcyclehub/internal/app/system/agenda"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// Insert writes a new event document tagged with its owner's uid.
func (s *Store) Insert(ctx context.Context, ev models.Event) (models.Event, error) {
	ev.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// ListByUser returns all events owned by uid, in natural (insertion)
// order. Agenda bucketing depends on that order being stable.
func (s *Store) ListByUser(ctx context.Context, uid string) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{"userId": uid})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByUserDateTitle removes every event matching (uid, date, title).
// Title is not a unique key: two same-titled events on the same date are
// both deleted. Returns the number of documents removed.
func (s *Store) DeleteByUserDateTitle(ctx context.Context, uid, date, title string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"userId": uid,
		"date":   date,
		"title":  title,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// UpdateFields patches an event by id with the non-nil fields of the
// patch. The owning uid is part of the filter so a user cannot patch
// another user's event by guessing ids.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, uid string, p agenda.EventPatch) (int64, error) {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Hour != nil {
		set["hour"] = *p.Hour
	}
	if p.Duration != nil {
		set["duration"] = *p.Duration
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}
	if len(set) == 0 {
		return 0, nil
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "userId": uid}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
