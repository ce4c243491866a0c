package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dukerupert/choreboard/internal/model"
)

type PlayerStore struct {
	db *sqlx.DB
}

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

const playerCols = `id, board_id, name, color, points, created_at, updated_at`

func insertPlayer(ctx context.Context, exec sqlx.ExecerContext, boardID, name, color string) (string, error) {
	id := newRecordID()
	_, err := exec.ExecContext(ctx,
		`INSERT INTO players (id, board_id, name, color, points) VALUES (?, ?, ?, ?, 0)`,
		id, boardID, name, color,
	)
	if err != nil {
		return "", fmt.Errorf("insert player: %w", err)
	}
	return id, nil
}

// Create adds a player with zero points to the board.
func (s *PlayerStore) Create(ctx context.Context, boardID, name, color string) (*model.Player, error) {
	if color == "" {
		color = model.DefaultPlayerColor
	}
	id, err := insertPlayer(ctx, s.db, boardID, name, color)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *PlayerStore) GetByID(ctx context.Context, id string) (*model.Player, error) {
	var p model.Player
	found, err := getOne(ctx, s.db, &p, `SELECT `+playerCols+` FROM players WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

// ListByBoard returns the board's players ordered by name.
func (s *PlayerStore) ListByBoard(ctx context.Context, boardID string) ([]model.Player, error) {
	players := []model.Player{}
	err := s.db.SelectContext(ctx, &players,
		`SELECT `+playerCols+` FROM players WHERE board_id = ? ORDER BY name ASC, id ASC`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// Update applies the non-nil fields of upd and returns the stored player.
func (s *PlayerStore) Update(ctx context.Context, id string, upd model.PlayerUpdate) (*model.Player, error) {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	var args []any
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *upd.Color)
	}
	if upd.Points != nil {
		sets = append(sets, "points = ?")
		args = append(args, *upd.Points)
	}
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, `UPDATE players SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update player: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *PlayerStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return requireAffected(result)
}
