package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dukerupert/choreboard/internal/model"
)

const (
	boardIDBytes     = 9 // 12 URL-safe characters
	maxBoardAttempts = 5
)

type BoardStore struct {
	db    *sqlx.DB
	newID func() (string, error)
}

func NewBoardStore(db *sqlx.DB) *BoardStore {
	return &BoardStore{db: db, newID: newBoardID}
}

func newBoardID() (string, error) {
	b := make([]byte, boardIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate board id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

const boardCols = `id, created_at`

// Create stores a new board under a fresh, previously unused id. Any non-empty
// player names are created on the board in the same transaction.
func (s *BoardStore) Create(ctx context.Context, playerNames ...string) (*model.Board, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id string
	for attempt := 0; attempt < maxBoardAttempts && id == ""; attempt++ {
		candidate, err := s.newID()
		if err != nil {
			return nil, err
		}
		result, err := tx.ExecContext(ctx, `INSERT INTO boards (id) VALUES (?) ON CONFLICT(id) DO NOTHING`, candidate)
		if err != nil {
			return nil, fmt.Errorf("insert board: %w", err)
		}
		if requireAffected(result) == nil {
			id = candidate
		}
	}
	if id == "" {
		return nil, fmt.Errorf("insert board: no unused id after %d attempts", maxBoardAttempts)
	}

	for _, name := range playerNames {
		if name == "" {
			continue
		}
		if _, err := insertPlayer(ctx, tx, id, name, model.DefaultPlayerColor); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit board: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *BoardStore) GetByID(ctx context.Context, id string) (*model.Board, error) {
	var b model.Board
	found, err := getOne(ctx, s.db, &b, `SELECT `+boardCols+` FROM boards WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &b, nil
}

// List returns every board, newest first, with its player and chore counts.
func (s *BoardStore) List(ctx context.Context) ([]model.BoardSummary, error) {
	boards := []model.BoardSummary{}
	err := s.db.SelectContext(ctx, &boards, `
		SELECT b.id, b.created_at,
			(SELECT COUNT(*) FROM players p WHERE p.board_id = b.id) AS player_count,
			(SELECT COUNT(*) FROM chores c WHERE c.board_id = b.id) AS chore_count
		FROM boards b
		ORDER BY b.created_at DESC, b.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// Delete removes the board together with its players, chores and completions.
func (s *BoardStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return requireAffected(result)
}
