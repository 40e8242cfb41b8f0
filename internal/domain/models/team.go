// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team belongs to an organization and carries its member list inline.
//
// NOTE:
//   - Members is appended to without a dedup check, so duplicate uid
//     entries are possible. Consumers must tolerate them.
//   - EventIDs is appended when an event is created with this team's
//     name; the two writes are independent, so the list can be stale.
type Team struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID    string             `bson:"orgId" json:"orgId"`
	Name     string             `bson:"name" json:"name"`
	Members  []TeamMember       `bson:"members" json:"members"`
	EventIDs []string           `bson:"eventIds,omitempty" json:"eventIds,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TeamMember is one member entry on a team document.
type TeamMember struct {
	UID  string `bson:"uid" json:"uid"`
	Role string `bson:"role" json:"role"` // member | manager
}

// HasMember reports whether uid appears in the member list.
func (t *Team) HasMember(uid string) bool {
	for _, m := range t.Members {
		if m.UID == uid {
			return true
		}
	}
	return false
}
