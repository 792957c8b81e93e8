package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/syllascan/pkg/repository"
)

const columns = `user_id, email, usage_count, api_key, created_at, updated_at`

type repo struct {
	db        *sql.DB
	logger    *slog.Logger
	freeLimit int
}

// New creates a usage repository implementing System.
func New(db *sql.DB, logger *slog.Logger, freeLimit int) System {
	return &repo{
		db:        db,
		logger:    logger.With("system", "usage"),
		freeLimit: freeLimit,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) FreeLimit() int {
	return r.freeLimit
}

func (r *repo) Get(ctx context.Context, userID string) (*Record, error) {
	q := "SELECT " + columns + " FROM api_usage WHERE user_id = $1"

	rec, err := repository.QueryOne(ctx, r.db, q, []any{userID}, scanRecord)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usage: %w", err)
	}
	return &rec, nil
}

func (r *repo) Summary(ctx context.Context, userID string) (Summary, error) {
	rec, err := r.Get(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(rec, r.freeLimit), nil
}

func (r *repo) Resolve(ctx context.Context, userID string) (Credential, error) {
	rec, err := r.Get(ctx, userID)
	if err != nil {
		return Credential{}, err
	}
	return Resolve(rec, r.freeLimit)
}

// Increment locks the user's row, then inserts it at 1 or bumps the count.
// A first insert racing another request falls through to the conflict update.
func (r *repo) Increment(ctx context.Context, userID, email string) (*Record, error) {
	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		lockQ := "SELECT " + columns + " FROM api_usage WHERE user_id = $1 FOR UPDATE"

		_, err := repository.QueryOne(ctx, tx, lockQ, []any{userID}, scanRecord)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			insertQ := `
				INSERT INTO api_usage(user_id, email, usage_count)
				VALUES ($1, $2, 1)
				ON CONFLICT (user_id) DO UPDATE SET
					usage_count = api_usage.usage_count + 1,
					updated_at = NOW()
				RETURNING ` + columns
			return repository.QueryOne(ctx, tx, insertQ, []any{userID, email}, scanRecord)
		case err != nil:
			return Record{}, fmt.Errorf("lock usage: %w", err)
		}

		updateQ := `
			UPDATE api_usage
			SET usage_count = usage_count + 1,
				email = COALESCE(NULLIF($2, ''), email),
				updated_at = NOW()
			WHERE user_id = $1
			RETURNING ` + columns
		return repository.QueryOne(ctx, tx, updateQ, []any{userID, email}, scanRecord)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(ctx, "usage incremented", "user", userID, "count", rec.UsageCount)
	return &rec, nil
}

func (r *repo) SaveKey(ctx context.Context, userID, email, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	q := `
		INSERT INTO api_usage(user_id, email, usage_count, api_key)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			api_key = EXCLUDED.api_key,
			email = COALESCE(NULLIF(EXCLUDED.email, ''), api_usage.email),
			updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, q, userID, email, strings.TrimSpace(key)); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}

	r.logger.InfoContext(ctx, "custom api key saved", "user", userID)
	return nil
}

func (r *repo) ClearKey(ctx context.Context, userID string) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE api_usage SET api_key = NULL, updated_at = NOW() WHERE user_id = $1",
		userID,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("clear api key: %w", err)
	}

	r.logger.InfoContext(ctx, "custom api key cleared", "user", userID)
	return nil
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	var email, key sql.NullString

	err := s.Scan(
		&r.UserID,
		&email,
		&r.UsageCount,
		&key,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return r, err
	}

	r.Email = email.String
	r.apiKey = key.String
	r.HasCustomKey = key.Valid && key.String != ""
	return r, nil
}
