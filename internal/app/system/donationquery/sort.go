// internal/app/system/donationquery/sort.go
package donationquery

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
)

// Sort modes for donation lists.
const (
	SortRecent     = "recent"     // newest donationDate first
	SortWeight     = "weight"     // lightest first item first, missing = 0
	SortExpiration = "expiration" // soonest expiration first, missing sorts last
)

// Sort orders donations in place according to mode. Unknown modes leave
// the order untouched, matching the no-op default of the list screen.
func Sort(donations []models.Donation, mode string) {
	switch mode {
	case SortRecent:
		sort.SliceStable(donations, func(i, j int) bool {
			return donationTime(&donations[j]).Before(donationTime(&donations[i]))
		})
	case SortWeight:
		sort.SliceStable(donations, func(i, j int) bool {
			return firstWeight(&donations[i]) < firstWeight(&donations[j])
		})
	case SortExpiration:
		sort.SliceStable(donations, func(i, j int) bool {
			return expirationTime(&donations[i]) < expirationTime(&donations[j])
		})
	}
}

func donationTime(d *models.Donation) time.Time {
	t, err := time.Parse(time.RFC3339, d.DonationDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// firstWeight returns the numeric weight of the first item (legacy shape:
// the top-level weight). Missing or non-numeric weight is 0.
func firstWeight(d *models.Donation) float64 {
	raw := ""
	if d.HasItems() && len(d.Items) > 0 {
		raw = d.Items[0].Weight
	} else if d.Weight != nil {
		raw = *d.Weight
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return w
}

// expirationTime returns the first item's expiration date as a unix
// timestamp (legacy shape: top-level expirationDate). Missing or
// unparseable dates sort last.
func expirationTime(d *models.Donation) float64 {
	raw := ""
	if d.HasItems() && len(d.Items) > 0 {
		raw = d.Items[0].ExpirationDate
	} else if d.ExpirationDate != nil {
		raw = *d.ExpirationDate
	}
	if raw == "" {
		return math.Inf(1)
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return math.Inf(1)
		}
	}
	return float64(t.Unix())
}
