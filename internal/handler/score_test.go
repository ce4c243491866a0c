package handler

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
)

func TestDoChore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID := env.board(t)
	p := env.player(t, boardID, "Alice")
	_, err := env.players.Update(ctx, p.ID, model.PlayerUpdate{Points: ptr(5)})
	require.NoError(t, err)
	c := env.chore(t, boardID, "Dishes", 3)

	rec := env.do(t, http.MethodPost, "/do-chore", url.Values{"playerId": {p.ID}, "choreId": {c.ID}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")

	got, err := env.players.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Points)

	recent, err := env.scores.ListRecent(ctx, boardID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Dishes", recent[0].ChoreName)
}

func TestDoChoreErrors(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)
	otherBoard := env.board(t)
	p := env.player(t, boardID, "Alice")
	c := env.chore(t, boardID, "Dishes", 3)
	foreign := env.chore(t, otherBoard, "Mow", 10)

	tests := []struct {
		name string
		form url.Values
		code int
	}{
		{name: "no fields", form: url.Values{}, code: http.StatusBadRequest},
		{name: "empty player", form: url.Values{"playerId": {""}, "choreId": {c.ID}}, code: http.StatusBadRequest},
		{name: "empty chore", form: url.Values{"playerId": {p.ID}, "choreId": {""}}, code: http.StatusBadRequest},
		{name: "missing player", form: url.Values{"playerId": {"nope"}, "choreId": {c.ID}}, code: http.StatusNotFound},
		{name: "missing chore", form: url.Values{"playerId": {p.ID}, "choreId": {"nope"}}, code: http.StatusNotFound},
		{name: "other board", form: url.Values{"playerId": {p.ID}, "choreId": {foreign.ID}}, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/do-chore", tt.form)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	got, err := env.players.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Points)
}

func TestDoChoreConcurrent(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)
	p := env.player(t, boardID, "Alice")
	c := env.chore(t, boardID, "Dishes", 2)

	const n = 10
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := env.do(t, http.MethodPost, "/do-chore", url.Values{"playerId": {p.ID}, "choreId": {c.ID}})
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	got, err := env.players.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2*n, got.Points)
}

func TestDoChoreTotalOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)
	p := env.player(t, boardID, "Alice")
	c := env.chore(t, boardID, "Dishes", 1)
	_, err := env.db.Exec(`UPDATE players SET points = ? WHERE id = ?`, store.MaxPlayerPoints, p.ID)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/do-chore", url.Values{"playerId": {p.ID}, "choreId": {c.ID}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/boards/"+boardID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/boards/"+boardID+"/players", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	got, err := env.players.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int(store.MaxPlayerPoints), got.Points)
}
