// Package models defines the client-side shapes of rows owned by the hosted
// backend. The client reads and upserts these, it never owns their schema.
package models

// Posting is one job posting on the care board. Date is a calendar day in
// "2006-01-02" form; Start and End are wall-clock times in "15:04" form,
// matching the text columns the backend stores. End may be empty.
type Posting struct {
	ID          string
	Date        string
	Start       string
	End         string
	Status      string
	CaregiverID string // empty when unassigned
	Details     string
}

// Assigned reports whether a caregiver has already taken the posting.
func (p Posting) Assigned() bool { return p.CaregiverID != "" }
