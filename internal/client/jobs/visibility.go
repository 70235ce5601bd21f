// Package jobs implements the care job board: the visibility rule deciding
// which postings are still open, and the service that fetches, caches and
// watches them.
package jobs

import (
	"time"

	"github.com/accion2025/buencuidar/internal/client/models"
)

// GracePeriod is the window after a posting's end time during which it stays
// visible to prospective caregivers.
const GracePeriod = 5 * time.Minute

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Visible reports whether a posting should still be shown at the given
// moment. The comparison uses now's location: "today" is the user's
// wall-clock day, not UTC.
//
// Rules: a posting dated after today is always visible; dated before today,
// never; dated today, visible until (end time, or start time when no end is
// set) plus GracePeriod.
func Visible(p models.Posting, now time.Time) bool {
	day, err := time.ParseInLocation(dateLayout, p.Date, now.Location())
	if err != nil {
		return false
	}

	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()

	switch {
	case y1 != y2 || m1 != m2 || d1 != d2:
		return day.After(now)
	default:
		ref := p.End
		if ref == "" {
			ref = p.Start
		}
		tod, err := time.Parse(timeLayout, ref)
		if err != nil {
			return false
		}
		expiry := time.Date(y2, m2, d2, tod.Hour(), tod.Minute(), 0, 0, now.Location()).Add(GracePeriod)
		return !now.After(expiry)
	}
}

// FilterVisible returns the subsequence of postings visible at now.
func FilterVisible(postings []models.Posting, now time.Time) []models.Posting {
	out := make([]models.Posting, 0, len(postings))
	for _, p := range postings {
		if Visible(p, now) {
			out = append(out, p)
		}
	}
	return out
}
