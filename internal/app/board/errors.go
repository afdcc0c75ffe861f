package board

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle    = errors.New("board title is empty")
	ErrTitleTooLong  = fmt.Errorf("board title is longer than %d characters", MaxTitleLength)
	ErrBoardExists   = errors.New("board already exists")
	ErrBoardNotFound = errors.New("board not found")
)
