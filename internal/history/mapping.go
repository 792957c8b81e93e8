package history

import (
	"database/sql"

	"github.com/JaimeStill/syllascan/pkg/query"
	"github.com/JaimeStill/syllascan/pkg/repository"
)

var projection = query.
	NewProjection("processing_history", "h").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("file_name", "FileName").
	Project("file_type", "FileType").
	Project("event_count", "EventCount").
	Project("status", "Status").
	Project("storage_key", "StorageKey").
	Project("processed_at", "ProcessedAt")

var newestFirst = query.SortField{
	Field:      "ProcessedAt",
	Descending: true,
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	var key sql.NullString

	err := s.Scan(
		&r.ID,
		&r.UserID,
		&r.FileName,
		&r.FileType,
		&r.EventCount,
		&r.Status,
		&key,
		&r.ProcessedAt,
	)
	if err != nil {
		return r, err
	}

	if key.Valid && key.String != "" {
		r.StorageKey = &key.String
	}
	return r, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
