package domain

import "time"

// DocumentStatus is the conversion state reported by the viewing API.
type DocumentStatus string

const (
	DocumentQueued     DocumentStatus = "queued"
	DocumentProcessing DocumentStatus = "processing"
	DocumentDone       DocumentStatus = "done"
	DocumentError      DocumentStatus = "error"
)

// Viewable reports whether sessions can be created for a document in this state.
func (s DocumentStatus) Viewable() bool {
	return s == DocumentDone
}

// Document is read-only metadata for an uploaded document.
type Document struct {
	Type      string         `json:"type"`
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    DocumentStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}
