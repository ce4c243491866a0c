package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/choreboard/internal/model"
)

func TestChoreCRUD(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChoreStore(db)
	ctx := context.Background()
	boardID := createBoard(t, db)

	// Create
	c, err := cs.Create(ctx, boardID, "Wash dishes", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, boardID, c.BoardID)
	assert.Equal(t, "Wash dishes", c.Name)
	assert.Equal(t, 5, c.Points)

	// Update points only
	updated, err := cs.Update(ctx, c.ID, model.ChoreUpdate{Points: ptr(8)})
	require.NoError(t, err)
	assert.Equal(t, "Wash dishes", updated.Name)
	assert.Equal(t, 8, updated.Points)

	// Update name only
	updated, err = cs.Update(ctx, c.ID, model.ChoreUpdate{Name: ptr("Dishes")})
	require.NoError(t, err)
	assert.Equal(t, "Dishes", updated.Name)
	assert.Equal(t, 8, updated.Points)

	// Delete
	require.NoError(t, cs.Delete(ctx, c.ID))
	got, err := cs.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestChoreMutationsNotFound(t *testing.T) {
	cs := NewChoreStore(setupTestDB(t))
	ctx := context.Background()

	_, err := cs.Update(ctx, "nope", model.ChoreUpdate{Points: ptr(1)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, cs.Delete(ctx, "nope"), ErrNotFound)
}

func TestChoreListByBoardScopedAndOrdered(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChoreStore(db)
	ctx := context.Background()
	b1, b2 := createBoard(t, db), createBoard(t, db)

	for _, name := range []string{"Vacuum", "Dishes", "Laundry"} {
		_, err := cs.Create(ctx, b1, name, 1)
		require.NoError(t, err)
	}
	_, err := cs.Create(ctx, b2, "Attic", 10)
	require.NoError(t, err)

	chores, err := cs.ListByBoard(ctx, b1)
	require.NoError(t, err)
	var names []string
	for _, c := range chores {
		assert.Equal(t, b1, c.BoardID)
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Dishes", "Laundry", "Vacuum"}, names)
}
