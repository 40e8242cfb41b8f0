// internal/domain/models/donation.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item status labels. These are unconstrained: any status can be written
// over any other, and unknown strings pass through verbatim.
const (
	StatusReceived     = "Received"
	StatusRefurbishing = "Refurbishing"
	StatusRefurbished  = "Refurbished"
	StatusAwaiting     = "Awaiting"
)

// Donation is a record of physically donated material.
//
// Two incompatible document shapes coexist in the donations collection:
// a newer shape with an Items array, and a legacy single-item shape with
// top-level ItemDescription/Quantity/Status fields. The discriminator is
// the presence of the items array (Items != nil). Both shapes are kept
// as-is; nothing migrates one to the other.
//
// Logistics and legacy fields are pointers with omitempty so that a field
// absent from the stored document stays absent: edits only rewrite fields
// the document already has (donor name, email, comment and the item list
// are the exception and are always rewritten).
type Donation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DonorName string             `bson:"donorName" json:"donorName"`
	Email     string             `bson:"email" json:"email"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`

	// Logistics fields; present on pick-up/drop-off donations only.
	Address      *string `bson:"address,omitempty" json:"address,omitempty"`
	City         *string `bson:"city,omitempty" json:"city,omitempty"`
	State        *string `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode      *string `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Method       *string `bson:"method,omitempty" json:"method,omitempty"`
	SelectedDate *string `bson:"selectedDate,omitempty" json:"selectedDate,omitempty"`
	SelectedTime *string `bson:"selectedTime,omitempty" json:"selectedTime,omitempty"`

	// DonationDate is an ISO 8601 timestamp string set at intake.
	DonationDate string `bson:"donationDate" json:"donationDate"`

	// Items is the newer shape. nil means the document uses the legacy
	// single-item fields below.
	Items []Item `bson:"items,omitempty" json:"items,omitempty"`

	// Legacy single-item shape.
	ItemDescription  *string `bson:"itemDescription,omitempty" json:"itemDescription,omitempty"`
	Quantity         *string `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Weight           *string `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit       *string `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
	Status           *string `bson:"status,omitempty" json:"status,omitempty"`
	MaterialCategory *string `bson:"materialCategory,omitempty" json:"materialCategory,omitempty"`
	ExpirationDate   *string `bson:"expirationDate,omitempty" json:"expirationDate,omitempty"`
}

// Item is one itemized entry embedded in a Donation. Quantity and Weight
// are strings: several client revisions wrote unvalidated free text here,
// and consumers treat non-numeric weight as zero.
type Item struct {
	Description      string `bson:"description" json:"description"`
	Quantity         string `bson:"quantity" json:"quantity"`
	Weight           string `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit       string `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
	Status           string `bson:"status,omitempty" json:"status,omitempty"`
	MaterialCategory string `bson:"materialCategory,omitempty" json:"materialCategory,omitempty"`
	ExpirationDate   string `bson:"expirationDate,omitempty" json:"expirationDate,omitempty"`
}

// HasItems reports whether the donation uses the items-array shape.
func (d *Donation) HasItems() bool { return d.Items != nil }
