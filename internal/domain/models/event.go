// internal/domain/models/event.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a calendar entry owned by a single user.
//
// Date is a YYYY-MM-DD string used as the agenda bucket key; Hour and
// Duration are display strings, not real timestamps. TeamName, when set
// at creation time, triggers a best-effort link of the new event id onto
// the matching team's eventIds array.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Hour        string             `bson:"hour" json:"hour"`
	Duration    string             `bson:"duration" json:"duration"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Date        string             `bson:"date" json:"date"`
	TeamName    string             `bson:"teamName,omitempty" json:"teamName,omitempty"`
	Completed   bool               `bson:"completed,omitempty" json:"completed,omitempty"`
}
