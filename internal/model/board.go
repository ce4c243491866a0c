package model

import "time"

type Board struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BoardSummary is a board with the size of its namespace, used by the admin listing.
type BoardSummary struct {
	Board
	PlayerCount int `json:"player_count" db:"player_count"`
	ChoreCount  int `json:"chore_count" db:"chore_count"`
}
