// internal/app/store/donations/donationstore.go
package donationstore

import (
	"context"
	"time"

	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("donations")}
}

// Insert writes a new donation. DonationDate is stamped here if the
// caller left it empty.
func (s *Store) Insert(ctx context.Context, d models.Donation) (models.Donation, error) {
	d.ID = primitive.NewObjectID()
	if d.DonationDate == "" {
		d.DonationDate = time.Now().UTC().Format(time.RFC3339)
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	var d models.Donation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// List returns the entire collection. Filtering and sorting happen in
// memory at the caller (donationquery); there is no server-side paging.
func (s *Store) List(ctx context.Context) ([]models.Donation, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Donation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Edit carries the editable donation fields. Items always has at least
// one entry; for a legacy-shape document its first entry maps back onto
// the top-level single-item fields.
type Edit struct {
	DonorName string
	Email     string
	Comment   string
	Items     []models.Item

	Address      string
	City         string
	State        string
	Zipcode      string
	Method       string
	SelectedDate string
	SelectedTime string
}

// Update applies an edit with the presence-preserving contract: donor
// name, email, comment and the item list are always rewritten; the
// logistics fields are rewritten only when the stored document already
// has them. A field absent on the original is never added.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, e Edit) error {
	orig, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	set := bson.M{
		"donorName": e.DonorName,
		"email":     e.Email,
		"comment":   e.Comment,
	}

	if orig.HasItems() {
		set["items"] = e.Items
	} else {
		var first models.Item
		if len(e.Items) > 0 {
			first = e.Items[0]
		}
		if first.WeightUnit == "" {
			first.WeightUnit = "lbs"
		}
		if first.Status == "" {
			first.Status = models.StatusAwaiting
		}
		set["itemDescription"] = first.Description
		set["quantity"] = first.Quantity
		set["weight"] = first.Weight
		set["weightUnit"] = first.WeightUnit
		set["status"] = first.Status
		set["materialCategory"] = first.MaterialCategory
		set["expirationDate"] = first.ExpirationDate
	}

	if orig.Address != nil {
		set["address"] = e.Address
	}
	if orig.City != nil {
		set["city"] = e.City
	}
	if orig.State != nil {
		set["state"] = e.State
	}
	if orig.Zipcode != nil {
		set["zipcode"] = e.Zipcode
	}
	if orig.Method != nil {
		set["method"] = e.Method
	}
	if orig.SelectedDate != nil {
		set["selectedDate"] = e.SelectedDate
	}
	if orig.SelectedTime != nil {
		set["selectedTime"] = e.SelectedTime
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a donation by ID. No cascade: events and teams that
// reference donated material are untouched. Returns the number of
// documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
