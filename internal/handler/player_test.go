package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/choreboard/internal/model"
)

func TestCreatePlayer(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)

	rec := env.do(t, http.MethodPost, "/boards/"+boardID+"/players", url.Values{"name": {" Alice "}, "color": {"red"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")

	players, err := env.players.ListByBoard(context.Background(), boardID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "red", players[0].Color)
	assert.Equal(t, 0, players[0].Points)
}

func TestCreatePlayerDefaultColor(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)

	rec := env.do(t, http.MethodPost, "/boards/"+boardID+"/players", url.Values{"name": {"Bob"}})
	require.Equal(t, http.StatusOK, rec.Code)

	players, err := env.players.ListByBoard(context.Background(), boardID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "gray", players[0].Color)
}

func TestCreatePlayerValidation(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)

	rec := env.do(t, http.MethodPost, "/boards/"+boardID+"/players", url.Values{"name": {"   "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name must not be empty\n", rec.Body.String())

	rec = env.do(t, http.MethodPost, "/boards/missing/players", url.Values{"name": {"Alice"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	players, err := env.players.ListByBoard(context.Background(), boardID)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestUpdatePlayer(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)
	p := env.player(t, boardID, "Alice")

	rec := env.do(t, http.MethodPut, "/manage-players/"+p.ID, url.Values{
		"name":   {"Alicia"},
		"color":  {"blue"},
		"points": {" -4 "},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alicia")

	got, err := env.players.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, "blue", got.Color)
	assert.Equal(t, -4, got.Points)
}

func TestUpdatePlayerPartial(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)
	p := env.player(t, boardID, "Alice")
	_, err := env.players.Update(context.Background(), p.ID, model.PlayerUpdate{Points: ptr(7)})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, "/manage-players/"+p.ID, url.Values{"color": {""}})
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := env.players.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "gray", got.Color)
	assert.Equal(t, 7, got.Points)
}

func TestUpdatePlayerValidation(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)
	p := env.player(t, boardID, "Alice")

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{name: "letters", form: url.Values{"points": {"abc"}}, want: "points must be a whole number\n"},
		{name: "decimal", form: url.Values{"points": {"1.5"}}, want: "points must be a whole number\n"},
		{name: "empty points", form: url.Values{"points": {""}}, want: "points must be a whole number\n"},
		{name: "empty name", form: url.Values{"name": {"  "}}, want: "name must not be empty\n"},
		{name: "too large", form: url.Values{"points": {"9223372036854775807"}}, want: "points must be between -1000000000 and 1000000000\n"},
		{name: "too small", form: url.Values{"points": {"-1000000001"}}, want: "points must be between -1000000000 and 1000000000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPut, "/manage-players/"+p.ID, tt.form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}

	got, err := env.players.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 0, got.Points)
}

func TestUpdatePlayerNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/manage-players/missing", url.Values{"points": {"3"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// validation runs before the lookup
	rec = env.do(t, http.MethodPut, "/manage-players/missing", url.Values{"points": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePlayer(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)
	alice := env.player(t, boardID, "Alice")
	env.player(t, boardID, "Bob")

	rec := env.do(t, http.MethodDelete, "/manage-players/"+alice.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Alice")
	assert.Contains(t, rec.Body.String(), "Bob")

	got, err := env.players.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	rec = env.do(t, http.MethodDelete, "/manage-players/"+alice.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePlayerOversizedPointsKeepsBoardUsable(t *testing.T) {
	env := newTestEnv(t)
	boardID := env.board(t)
	p := env.player(t, boardID, "Alice")
	c := env.chore(t, boardID, "Dishes", 1)

	rec := env.do(t, http.MethodPut, "/manage-players/"+p.ID, url.Values{"points": {"9223372036854775807"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/do-chore", url.Values{"playerId": {p.ID}, "choreId": {c.ID}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/boards/"+boardID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/boards/"+boardID+"/players", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	got, err := env.players.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Points)
}
