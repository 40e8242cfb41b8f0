package donationstore

import (
	"testing"
	"time"

	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"github.com/upcyclebuild/upcyclehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsert_StampsDonationDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	d, err := s.Insert(ctx, models.Donation{
		DonorName: "Pat",
		Email:     "pat@example.com",
		Items:     []models.Item{{Description: "Chair", Quantity: "1"}},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if d.DonationDate == "" {
		t.Fatal("expected donationDate to be stamped")
	}
	if _, err := time.Parse(time.RFC3339, d.DonationDate); err != nil {
		t.Errorf("donationDate not RFC3339: %q", d.DonationDate)
	}
}

func TestInsert_KeepsProvidedDonationDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	d, err := s.Insert(ctx, models.Donation{
		DonorName:    "Pat",
		Email:        "pat@example.com",
		DonationDate: "2026-01-01T00:00:00Z",
		Items:        []models.Item{{Description: "Chair", Quantity: "1"}},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if d.DonationDate != "2026-01-01T00:00:00Z" {
		t.Errorf("provided donationDate must survive, got %q", d.DonationDate)
	}
}

func TestUpdate_ItemizedShapeRewritesItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	orig, err := s.Insert(ctx, models.Donation{
		DonorName: "Pat",
		Email:     "pat@example.com",
		Items: []models.Item{
			{Description: "Chair", Quantity: "1", Status: models.StatusAwaiting},
		},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	err = s.Update(ctx, orig.ID, Edit{
		DonorName: "Patricia",
		Email:     "patricia@example.com",
		Comment:   "updated",
		Items: []models.Item{
			{Description: "Chair", Quantity: "1", Status: models.StatusRefurbished},
			{Description: "Desk", Quantity: "1", Status: models.StatusReceived},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.GetByID(ctx, orig.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.DonorName != "Patricia" || got.Comment != "updated" {
		t.Errorf("always-written fields missing: %+v", got)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].Status != models.StatusRefurbished {
		t.Errorf("item status: got %q", got.Items[0].Status)
	}
	if got.ItemDescription != nil {
		t.Error("itemized document must not grow legacy fields")
	}
}

func TestUpdate_LegacyShapeStaysLegacy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	desc, qty := "Couch", "1"
	orig, err := s.Insert(ctx, models.Donation{
		DonorName:       "Sam",
		Email:           "sam@example.com",
		ItemDescription: &desc,
		Quantity:        &qty,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	err = s.Update(ctx, orig.ID, Edit{
		DonorName: "Sam",
		Email:     "sam@example.com",
		Items: []models.Item{
			{Description: "Loveseat", Quantity: "2", MaterialCategory: "Textiles"},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.GetByID(ctx, orig.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.HasItems() {
		t.Fatal("legacy document must not be migrated to the items shape")
	}
	if got.ItemDescription == nil || *got.ItemDescription != "Loveseat" {
		t.Errorf("legacy description: got %v", got.ItemDescription)
	}
	if got.Quantity == nil || *got.Quantity != "2" {
		t.Errorf("legacy quantity: got %v", got.Quantity)
	}
	if got.WeightUnit == nil || *got.WeightUnit != "lbs" {
		t.Errorf("missing weight unit must default to lbs, got %v", got.WeightUnit)
	}
	if got.Status == nil || *got.Status != models.StatusAwaiting {
		t.Errorf("missing status must default to Awaiting, got %v", got.Status)
	}
}

func TestUpdate_PreservesFieldAbsence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	method := "Pick-up"
	orig, err := s.Insert(ctx, models.Donation{
		DonorName: "Pat",
		Email:     "pat@example.com",
		Method:    &method,
		Items:     []models.Item{{Description: "Chair", Quantity: "1"}},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	err = s.Update(ctx, orig.ID, Edit{
		DonorName: "Pat",
		Email:     "pat@example.com",
		Items:     []models.Item{{Description: "Chair", Quantity: "1"}},
		Method:    "Drop-off",
		Address:   "123 Elm St",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.GetByID(ctx, orig.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	// Method existed on the original, so the edit lands.
	if got.Method == nil || *got.Method != "Drop-off" {
		t.Errorf("present field must be rewritten, got %v", got.Method)
	}
	// Address did not exist, so the edit must not create it.
	if got.Address != nil {
		t.Errorf("absent field must stay absent, got %v", *got.Address)
	}
}

func TestUpdate_UnknownIDReturnsNoDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	missing, _ := s.Insert(ctx, models.Donation{
		DonorName: "Pat", Email: "pat@example.com",
		Items: []models.Item{{Description: "Chair", Quantity: "1"}},
	})
	if _, err := s.Delete(ctx, missing.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	err := s.Update(ctx, missing.ID, Edit{DonorName: "X", Items: []models.Item{{Description: "Y"}}})
	if err != mongo.ErrNoDocuments {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStatusRoundTrip_ArbitraryLabels(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	orig, err := s.Insert(ctx, models.Donation{
		DonorName: "Pat",
		Email:     "pat@example.com",
		Items:     []models.Item{{Description: "Chair", Quantity: "1", Status: "Quarantined"}},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := s.GetByID(ctx, orig.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	// Status labels are unconstrained and stored verbatim.
	if got.Items[0].Status != "Quarantined" {
		t.Errorf("status round-trip: got %q", got.Items[0].Status)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	d, err := s.Insert(ctx, models.Donation{
		DonorName: "Pat", Email: "pat@example.com",
		Items: []models.Item{{Description: "Chair", Quantity: "1"}},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	n, err := s.Delete(ctx, d.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deletion, got %d", n)
	}

	n, err = s.Delete(ctx, d.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deletions on repeat, got %d", n)
	}
}
