// internal/app/system/donationquery/filter.go

// Package donationquery filters and sorts donation lists in memory. The
// list screens always load the whole collection and narrow it client
// side; the collection is small and that ceiling is out of scope to fix.
package donationquery

import (
	"strings"

	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
)

// Filter is the set of list filters. Empty values match everything.
type Filter struct {
	Method         string // exact, case-insensitive match on the method field
	MaterialStatus string // any item matches (legacy shape: top-level status)
	Category       string // any item matches (legacy shape: top-level category)
}

// Match reports whether d passes all non-empty filters.
func (f Filter) Match(d *models.Donation) bool {
	return f.matchMethod(d) && f.matchStatus(d) && f.matchCategory(d)
}

// Apply returns the donations that pass the filter, preserving order.
func (f Filter) Apply(donations []models.Donation) []models.Donation {
	if strings.TrimSpace(f.Method) == "" &&
		strings.TrimSpace(f.MaterialStatus) == "" &&
		strings.TrimSpace(f.Category) == "" {
		return donations
	}
	out := make([]models.Donation, 0, len(donations))
	for i := range donations {
		if f.Match(&donations[i]) {
			out = append(out, donations[i])
		}
	}
	return out
}

func (f Filter) matchMethod(d *models.Donation) bool {
	want := strings.TrimSpace(f.Method)
	if want == "" {
		return true
	}
	return d.Method != nil && strings.EqualFold(*d.Method, want)
}

func (f Filter) matchStatus(d *models.Donation) bool {
	want := strings.TrimSpace(f.MaterialStatus)
	if want == "" {
		return true
	}
	if d.HasItems() {
		for _, it := range d.Items {
			if it.Status != "" && strings.EqualFold(it.Status, want) {
				return true
			}
		}
		return false
	}
	return d.Status != nil && strings.EqualFold(*d.Status, want)
}

func (f Filter) matchCategory(d *models.Donation) bool {
	want := strings.TrimSpace(f.Category)
	if want == "" {
		return true
	}
	if d.HasItems() {
		for _, it := range d.Items {
			if it.MaterialCategory != "" && strings.EqualFold(it.MaterialCategory, want) {
				return true
			}
		}
		return false
	}
	return d.MaterialCategory != nil && strings.EqualFold(*d.MaterialCategory, want)
}
