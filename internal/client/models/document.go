package models

import "time"

// DocumentType identifies one of the verification documents a caregiver
// submits before being allowed to take jobs.
type DocumentType string

const (
	DocumentDNIFront          DocumentType = "dni_front"
	DocumentDNIBack           DocumentType = "dni_back"
	DocumentCriminalRecord    DocumentType = "criminal_record"
	DocumentProfessionalTitle DocumentType = "professional_title"
)

// KnownDocumentTypes lists every accepted verification document type.
var KnownDocumentTypes = []DocumentType{
	DocumentDNIFront,
	DocumentDNIBack,
	DocumentCriminalRecord,
	DocumentProfessionalTitle,
}

// ValidDocumentType reports whether t is an accepted document type.
func ValidDocumentType(t DocumentType) bool {
	for _, k := range KnownDocumentTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Document is a submitted verification document as known locally.
type Document struct {
	OwnerID     string
	Type        DocumentType
	StoragePath string
	Status      string
	UploadedAt  time.Time
}
