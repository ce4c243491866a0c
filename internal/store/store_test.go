package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/choreboard/internal/database"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createBoard(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	b, err := NewBoardStore(db).Create(context.Background())
	require.NoError(t, err)
	return b.ID
}
