package board

import "time"

// MaxTitleLength is the longest title, in characters, a board may carry.
const MaxTitleLength = 255

type Board struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;unique;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ListPage is the view model of the boards page.
type ListPage struct {
	Title     string
	ShowInput bool
	Message   string
	Boards    []*Board
}

type DetailPage struct {
	Title string
	Board *Board
}
