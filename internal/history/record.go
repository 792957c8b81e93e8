package history

import (
	"time"

	"github.com/google/uuid"
)

// Status summarizes how many of a source file's events reached the calendar.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// StatusFor derives the status of a file from its inserted and total event counts.
func StatusFor(inserted, total int) Status {
	switch {
	case total > 0 && inserted >= total:
		return StatusSuccess
	case inserted > 0:
		return StatusPartial
	default:
		return StatusFailed
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusPartial, StatusFailed:
		return true
	}
	return false
}

// Record is one processed source file.
type Record struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"userId"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	EventCount  int       `json:"eventCount"`
	Status      Status    `json:"status"`
	StorageKey  *string   `json:"storageKey,omitempty"`
	ProcessedAt time.Time `json:"processedAt"`
}

// CreateCommand holds the fields written when a record is created.
type CreateCommand struct {
	UserID     string
	FileName   string
	FileType   string
	EventCount int
	Status     Status
	StorageKey string
}
