package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrEmptyUsername      = errors.New("username is required")
	ErrEmptyPassword      = errors.New("password is required")
)
