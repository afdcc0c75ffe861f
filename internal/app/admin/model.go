package admin

import (
	"time"

	"trello/internal/app/board"
)

// Operator is an account allowed into the admin pages.
type Operator struct {
	ID           uint64    `gorm:"primaryKey"`
	Username     string    `gorm:"size:150;unique;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type LoginPage struct {
	Title    string
	Next     string
	Username string
	Error    string
}

type BoardsPage struct {
	Title    string
	Operator string
	Count    int64
	Boards   []*board.Board
}
