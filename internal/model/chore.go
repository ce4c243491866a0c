package model

import "time"

type Chore struct {
	ID        string    `json:"id" db:"id"`
	BoardID   string    `json:"board_id" db:"board_id"`
	Name      string    `json:"name" db:"name"`
	Points    int       `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ChoreUpdate holds the fields of a partial update. Nil fields are left unchanged.
type ChoreUpdate struct {
	Name   *string
	Points *int
}

// ChoreCompletion records one do-chore credit. ChoreID is nil once the chore
// has been deleted; ChoreName keeps the name it had at completion time.
type ChoreCompletion struct {
	ID          int64     `json:"id" db:"id"`
	BoardID     string    `json:"board_id" db:"board_id"`
	PlayerID    string    `json:"player_id" db:"player_id"`
	PlayerName  string    `json:"player_name" db:"player_name"`
	PlayerColor string    `json:"player_color" db:"player_color"`
	ChoreID     *string   `json:"chore_id" db:"chore_id"`
	ChoreName   string    `json:"chore_name" db:"chore_name"`
	Points      int       `json:"points" db:"points"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}
