package models

// Appointment is a care request as the client submits it. Date and time
// fields use the same text forms as Posting. Details carries the encoded
// care plan.
type Appointment struct {
	ID       string
	ClientID string
	Date     string
	Start    string
	End      string
	Status   string
	Details  string
}
