package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned by mutations whose target row does not exist.
var ErrNotFound = errors.New("not found")

// ErrPointsOutOfRange is returned when a credit would move a player's total
// outside [-MaxPlayerPoints, MaxPlayerPoints].
var ErrPointsOutOfRange = errors.New("points out of range")

// MaxPlayerPoints bounds a player's running total. It sits far below the
// int64 limit so the sum in the credit statement stays an integer.
const MaxPlayerPoints int64 = 1_000_000_000_000_000

func newRecordID() string {
	return uuid.NewString()
}

// getOne runs a single-row query into dest and reports whether a row was found.
func getOne(ctx context.Context, q sqlx.QueryerContext, dest any, query string, args ...any) (bool, error) {
	err := sqlx.GetContext(ctx, q, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// requireAffected turns a zero-row mutation into ErrNotFound.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
