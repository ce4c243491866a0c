package model

import "time"

// DefaultPlayerColor is used when a player is created without a color.
const DefaultPlayerColor = "gray"

type Player struct {
	ID        string    `json:"id" db:"id"`
	BoardID   string    `json:"board_id" db:"board_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Points    int       `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PlayerUpdate holds the fields of a partial update. Nil fields are left unchanged.
type PlayerUpdate struct {
	Name   *string
	Color  *string
	Points *int
}
