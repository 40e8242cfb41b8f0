// internal/app/features/donations/handler.go
package donations

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	donationstore "github.com/upcyclebuild/upcyclehub/internal/app/store/donations"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/donationquery"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/htmlsanitize"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/mailer"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/receipt"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/timeouts"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Mailer   *mailer.Mailer
	SiteName string
}

func NewHandler(db *mongo.Database, m *mailer.Mailer, siteName string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog, Mailer: m, SiteName: siteName}
}

type intakeRequest struct {
	DonorName string        `json:"donorName"`
	Email     string        `json:"email"`
	Comment   string        `json:"comment"`
	Items     []models.Item `json:"items"`

	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zipcode      *string `json:"zipcode"`
	Method       *string `json:"method"`
	SelectedDate *string `json:"selectedDate"`
	SelectedTime *string `json:"selectedTime"`

	// Legacy single-item shape; honored when items is absent.
	ItemDescription  *string `json:"itemDescription"`
	Quantity         *string `json:"quantity"`
	Weight           *string `json:"weight"`
	WeightUnit       *string `json:"weightUnit"`
	Status           *string `json:"status"`
	MaterialCategory *string `json:"materialCategory"`
	ExpirationDate   *string `json:"expirationDate"`
}

// HandleIntake handles POST /donations. Which shape the document gets
// follows the request: an items array yields the itemized shape, its
// absence the legacy single-item shape. The receipt email is sent on a
// background goroutine and never blocks or fails the intake.
func (h *Handler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}

	req.DonorName = strings.TrimSpace(req.DonorName)
	req.Email = strings.TrimSpace(req.Email)
	if req.DonorName == "" || req.Email == "" {
		uierrors.BadRequest(w, "Donor name and email are required.")
		return
	}
	if req.Items == nil && req.ItemDescription == nil {
		uierrors.BadRequest(w, "At least one item is required.")
		return
	}
	if req.Items != nil && !itemsComplete(req.Items) {
		uierrors.BadRequest(w, "Every item needs a description and a quantity.")
		return
	}

	d := models.Donation{
		DonorName:    htmlsanitize.Strip(req.DonorName),
		Email:        req.Email,
		Comment:      htmlsanitize.Strip(req.Comment),
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zipcode:      req.Zipcode,
		Method:       req.Method,
		SelectedDate: req.SelectedDate,
		SelectedTime: req.SelectedTime,
	}
	if req.Items != nil {
		d.Items = req.Items
		for i := range d.Items {
			if d.Items[i].Status == "" {
				d.Items[i].Status = models.StatusAwaiting
			}
			if d.Items[i].WeightUnit == "" {
				d.Items[i].WeightUnit = "lbs"
			}
		}
	} else {
		d.ItemDescription = req.ItemDescription
		d.Quantity = req.Quantity
		d.Weight = req.Weight
		d.WeightUnit = req.WeightUnit
		d.Status = req.Status
		d.MaterialCategory = req.MaterialCategory
		d.ExpirationDate = req.ExpirationDate
		if d.Status == nil {
			s := models.StatusAwaiting
			d.Status = &s
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inserted, err := donationstore.New(h.DB).Insert(ctx, d)
	if err != nil {
		h.ErrLog.LogServerError(w, "database error inserting donation", err, "Could not record the donation.")
		return
	}

	h.sendReceiptEmail(inserted)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(inserted)
}

// itemsComplete reports whether the item list is non-empty and every
// entry carries a description and a quantity.
func itemsComplete(items []models.Item) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if strings.TrimSpace(it.Description) == "" || strings.TrimSpace(it.Quantity) == "" {
			return false
		}
	}
	return true
}

// sendReceiptEmail queues the thank-you email for a recorded donation.
func (h *Handler) sendReceiptEmail(d models.Donation) {
	if h.Mailer == nil {
		return
	}
	data := mailer.DonationReceiptData{
		SiteName:  h.SiteName,
		DonorName: d.DonorName,
		Date:      time.Now().UTC().Format("January 2, 2006"),
	}
	if d.HasItems() && len(d.Items) > 0 {
		data.Description = d.Items[0].Description
		data.Quantity = d.Items[0].Quantity
		data.ExpDate = d.Items[0].ExpirationDate
	} else {
		if d.ItemDescription != nil {
			data.Description = *d.ItemDescription
		}
		if d.Quantity != nil {
			data.Quantity = *d.Quantity
		}
		if d.ExpirationDate != nil {
			data.ExpDate = *d.ExpirationDate
		}
	}
	e := mailer.BuildDonationReceiptEmail(data)
	e.To = d.Email
	h.Mailer.SendAsync(e)
}

// HandleList handles GET /donations with optional query parameters:
// method, status and category filter, sort orders (recent, weight,
// expiration). Filtering and sorting run in memory over the full
// collection; the donation log is small and read rarely.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	all, err := donationstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, "database error listing donations", err, "Could not load donations.")
		return
	}

	f := donationquery.Filter{
		Method:         q.Get("method"),
		MaterialStatus: q.Get("status"),
		Category:       q.Get("category"),
	}
	out := f.Apply(all)
	donationquery.Sort(out, q.Get("sort"))

	if out == nil {
		out = []models.Donation{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.BadRequest(w, "A valid donation id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := donationstore.New(h.DB).GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		uierrors.NotFound(w, "Donation not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, "database error loading donation", err, "Could not load the donation.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(d)
}

type editRequest struct {
	DonorName string        `json:"donorName"`
	Email     string        `json:"email"`
	Comment   string        `json:"comment"`
	Items     []models.Item `json:"items"`

	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zipcode      string `json:"zipcode"`
	Method       string `json:"method"`
	SelectedDate string `json:"selectedDate"`
	SelectedTime string `json:"selectedTime"`
}

// HandleEdit handles PUT /donations/{id}. The store enforces the
// presence-preserving write: logistics fields only land on documents
// that already carry them.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.BadRequest(w, "A valid donation id is required.")
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "Invalid request body.")
		return
	}
	req.DonorName = strings.TrimSpace(req.DonorName)
	if req.DonorName == "" {
		uierrors.BadRequest(w, "Donor name is required.")
		return
	}
	if !itemsComplete(req.Items) {
		uierrors.BadRequest(w, "Every item needs a description and a quantity.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	e := donationstore.Edit{
		DonorName:    htmlsanitize.Strip(req.DonorName),
		Email:        strings.TrimSpace(req.Email),
		Comment:      htmlsanitize.Strip(req.Comment),
		Items:        req.Items,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zipcode:      req.Zipcode,
		Method:       req.Method,
		SelectedDate: req.SelectedDate,
		SelectedTime: req.SelectedTime,
	}
	if err := donationstore.New(h.DB).Update(ctx, oid, e); err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.NotFound(w, "Donation not found.")
			return
		}
		h.ErrLog.LogServerError(w, "database error updating donation", err, "Could not update the donation.")
		return
	}

	updated, err := donationstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogServerError(w, "database error reloading donation", err, "Could not load the updated donation.")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.BadRequest(w, "A valid donation id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := donationstore.New(h.DB).Delete(ctx, oid)
	if err != nil {
		h.ErrLog.LogServerError(w, "database error deleting donation", err, "Could not delete the donation.")
		return
	}
	if deleted == 0 {
		uierrors.NotFound(w, "Donation not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReceipt handles GET /donations/{id}/receipt and returns the
// printable HTML receipt for a donation.
func (h *Handler) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.BadRequest(w, "A valid donation id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := donationstore.New(h.DB).GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		uierrors.NotFound(w, "Donation not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, "database error loading donation for receipt", err, "Could not load the donation.")
		return
	}

	html, err := receipt.Render(&d)
	if err != nil {
		h.ErrLog.LogServerError(w, "receipt render failed", err, "Could not render the receipt.")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
