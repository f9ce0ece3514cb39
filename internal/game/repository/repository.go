// Package repository implements the store contract on Postgres. All
// coordination between concurrent actors happens here, through atomic
// conditional writes: compare-and-swap status updates, insert-if-absent
// answers, and keyed vote upserts. There is no in-process lock shared
// across callers.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mcdev12/stopgame/internal/game/db"
	"github.com/mcdev12/stopgame/internal/gameerr"
)

// pgUniqueViolation is the Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

type Repository struct {
	queries *db.Queries
}

func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// mapErr translates store-level failures into the shared taxonomy.
// Unique violations become PreconditionFailed: the row the caller tried
// to create already exists, which under this store contract means a
// concurrent actor got there first.
func mapErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, gameerr.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w: duplicate key", op, gameerr.ErrPreconditionFailed)
	}
	return fmt.Errorf("%s: %w: %v", op, gameerr.ErrStoreUnavailable, err)
}
