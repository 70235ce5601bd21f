package common

// Table names owned by the hosted backend. The client never creates these,
// it only reads and upserts rows through the remote data service.
const (
	TableProfiles     = "profiles"
	TableDocuments    = "caregiver_documents"
	TableJobPostings  = "job_postings"
	TableAppointments = "appointments"
	TableAuthSessions = "auth_sessions"
)

// DocumentStatusInReview is the status written for a freshly uploaded
// verification document; a back-office reviewer moves it forward from there.
const DocumentStatusInReview = "in_review"
