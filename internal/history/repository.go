package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/syllascan/pkg/pagination"
	"github.com/JaimeStill/syllascan/pkg/query"
	"github.com/JaimeStill/syllascan/pkg/repository"
	"github.com/JaimeStill/syllascan/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a history repository implementing System.
func New(
	db *sql.DB,
	storage storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    storage,
		logger:     logger.With("system", "history"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Record, error) {
	if !cmd.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, cmd.Status)
	}

	q := `
		INSERT INTO processing_history(
			user_id, file_name, file_type, event_count, status, storage_key
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, file_name, file_type, event_count, status,
				  storage_key, processed_at`

	args := []any{
		cmd.UserID,
		cmd.FileName,
		cmd.FileType,
		cmd.EventCount,
		string(cmd.Status),
		nullable(cmd.StorageKey),
	}

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(ctx, "history recorded",
		"id", rec.ID,
		"file", rec.FileName,
		"status", rec.Status,
		"events", rec.EventCount,
	)
	return &rec, nil
}

func (r *repo) List(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, newestFirst).
		WhereEquals("UserID", userID)

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryScalar[int](ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.PageSize, page.Offset())
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, userID string, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if rec.UserID != userID {
		return nil, ErrForbidden
	}
	return &rec, nil
}

func (r *repo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	rec, err := r.Find(ctx, userID, id)
	if err != nil {
		return err
	}

	err = repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM processing_history WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if rec.StorageKey != nil && r.storage != nil {
		if err := r.storage.Delete(ctx, *rec.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.logger.WarnContext(ctx, "archived source not deleted",
				"id", id,
				"key", *rec.StorageKey,
				"error", err,
			)
		}
	}

	r.logger.InfoContext(ctx, "history deleted", "id", id)
	return nil
}

func (r *repo) Source(ctx context.Context, userID string, id uuid.UUID) (*storage.Blob, *Record, error) {
	rec, err := r.Find(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	if rec.StorageKey == nil || r.storage == nil {
		return nil, nil, ErrNoSource
	}

	blob, err := r.storage.Download(ctx, *rec.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download source %s: %w", id, err)
	}
	return blob, rec, nil
}
