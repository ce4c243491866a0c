package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dukerupert/choreboard/internal/model"
)

type ChoreStore struct {
	db *sqlx.DB
}

func NewChoreStore(db *sqlx.DB) *ChoreStore {
	return &ChoreStore{db: db}
}

const choreCols = `id, board_id, name, points, created_at, updated_at`

func (s *ChoreStore) Create(ctx context.Context, boardID, name string, points int) (*model.Chore, error) {
	id := newRecordID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chores (id, board_id, name, points) VALUES (?, ?, ?, ?)`,
		id, boardID, name, points,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *ChoreStore) GetByID(ctx context.Context, id string) (*model.Chore, error) {
	var c model.Chore
	found, err := getOne(ctx, s.db, &c, `SELECT `+choreCols+` FROM chores WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &c, nil
}

// ListByBoard returns the board's chores ordered by name.
func (s *ChoreStore) ListByBoard(ctx context.Context, boardID string) ([]model.Chore, error) {
	chores := []model.Chore{}
	err := s.db.SelectContext(ctx, &chores,
		`SELECT `+choreCols+` FROM chores WHERE board_id = ? ORDER BY name ASC, id ASC`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	return chores, nil
}

// Update applies the non-nil fields of upd and returns the stored chore.
func (s *ChoreStore) Update(ctx context.Context, id string, upd model.ChoreUpdate) (*model.Chore, error) {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	var args []any
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Points != nil {
		sets = append(sets, "points = ?")
		args = append(args, *upd.Points)
	}
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, `UPDATE chores SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *ChoreStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}
	return requireAffected(result)
}
