// Package history persists one record per processed syllabus file and
// serves the owner's list, deletion, and archived source download.
package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/syllascan/pkg/pagination"
	"github.com/JaimeStill/syllascan/pkg/storage"
)

// System defines the public contract for processing history.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Record, error)
	List(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResult[Record], error)
	Find(ctx context.Context, userID string, id uuid.UUID) (*Record, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	Source(ctx context.Context, userID string, id uuid.UUID) (*storage.Blob, *Record, error)
}
