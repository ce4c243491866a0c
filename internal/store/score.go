package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dukerupert/choreboard/internal/model"
)

// ScoreStore credits chores to players and keeps the completion log.
type ScoreStore struct {
	db *sqlx.DB
}

func NewScoreStore(db *sqlx.DB) *ScoreStore {
	return &ScoreStore{db: db}
}

const completionQuery = `
	SELECT cc.id, cc.board_id, cc.player_id, p.name AS player_name, p.color AS player_color,
		cc.chore_id, cc.chore_name, cc.points, cc.completed_at
	FROM chore_completions cc
	JOIN players p ON p.id = cc.player_id`

// DoChore adds the chore's current point value to the player's total and
// records the completion. The increment happens inside the UPDATE statement,
// never as a read followed by a write. ErrNotFound is returned when the
// player or chore is missing or the two belong to different boards, and
// ErrPointsOutOfRange when the new total would pass MaxPlayerPoints.
func (s *ScoreStore) DoChore(ctx context.Context, playerID, choreID string) (*model.ChoreCompletion, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE players
		SET points = points + (SELECT c.points FROM chores c WHERE c.id = ? AND c.board_id = players.board_id),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
			AND EXISTS (SELECT 1 FROM chores c WHERE c.id = ? AND c.board_id = players.board_id)
			AND points + (SELECT c.points FROM chores c WHERE c.id = ?) BETWEEN ? AND ?`,
		choreID, playerID, choreID, choreID, -MaxPlayerPoints, MaxPlayerPoints,
	)
	if err != nil {
		return nil, fmt.Errorf("credit points: %w", err)
	}
	if err := requireAffected(result); errors.Is(err, ErrNotFound) {
		return nil, s.creditFailure(ctx, tx, playerID, choreID)
	} else if err != nil {
		return nil, err
	}

	result, err = tx.ExecContext(ctx, `
		INSERT INTO chore_completions (board_id, player_id, chore_id, chore_name, points)
		SELECT c.board_id, ?, c.id, c.name, c.points FROM chores c WHERE c.id = ?`,
		playerID, choreID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	var c model.ChoreCompletion
	if err := tx.GetContext(ctx, &c, completionQuery+` WHERE cc.id = ?`, id); err != nil {
		return nil, fmt.Errorf("get completion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit completion: %w", err)
	}
	return &c, nil
}

// creditFailure tells a missing or foreign record apart from a total that
// would leave the allowed range.
func (s *ScoreStore) creditFailure(ctx context.Context, tx *sqlx.Tx, playerID, choreID string) error {
	var paired bool
	err := tx.GetContext(ctx, &paired, `
		SELECT EXISTS (
			SELECT 1 FROM players p JOIN chores c ON c.board_id = p.board_id
			WHERE p.id = ? AND c.id = ?
		)`, playerID, choreID)
	if err != nil {
		return fmt.Errorf("check credit: %w", err)
	}
	if paired {
		return ErrPointsOutOfRange
	}
	return ErrNotFound
}

// ListRecent returns the board's latest completions, newest first.
func (s *ScoreStore) ListRecent(ctx context.Context, boardID string, limit int) ([]model.ChoreCompletion, error) {
	completions := []model.ChoreCompletion{}
	err := s.db.SelectContext(ctx, &completions,
		completionQuery+` WHERE cc.board_id = ? ORDER BY cc.completed_at DESC, cc.id DESC LIMIT ?`,
		boardID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return completions, nil
}
