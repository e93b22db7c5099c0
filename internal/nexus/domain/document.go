package domain

import "time"

// Document is metadata for an uploaded file. The storage filename is
// server-generated and unique, decoupled from the user-supplied name so a
// hostile filename can neither collide nor traverse. Documents are created at
// upload and never mutated.
type Document struct {
	ID               string
	OriginalFilename string
	StorageFilename  string // blob store key
	MimeType         string
	Size             int64
	ProjectID        string // owning project
	UploadedByID     string // attribution only
	CreatedAt        time.Time
}
