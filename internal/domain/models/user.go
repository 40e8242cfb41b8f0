// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account record.
//
// NOTE:
//   - Organization membership is denormalized onto the user document as
//     an array of OrgMembership entries; there is no join collection and
//     no referential integrity beyond document ids.
//   - TeamIDs mirrors team membership from the other side; it is
//     maintained with $addToSet when a user is added to a team.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	Username     string             `bson:"username,omitempty" json:"username,omitempty"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	PasswordHash []byte             `bson:"password_hash" json:"-"`

	Organizations []OrgMembership `bson:"organizations" json:"organizations"`
	TeamIDs       []string        `bson:"teamIds,omitempty" json:"teamIds,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// OrgMembership is a denormalized role assignment linking a user to an
// organization. OrgName is a copy of the organization's name at join time.
type OrgMembership struct {
	OrgID   string `bson:"orgId" json:"orgId"`
	OrgName string `bson:"orgName" json:"orgName"`
	Role    string `bson:"role" json:"role"` // admin | manager | member
}

// IsOrgAdmin reports whether the user holds the admin role in the given
// organization, by scanning the denormalized membership list.
func (u *User) IsOrgAdmin(orgID string) bool {
	for _, m := range u.Organizations {
		if m.OrgID == orgID && m.Role == "admin" {
			return true
		}
	}
	return false
}
