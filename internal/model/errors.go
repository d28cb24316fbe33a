package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Session/token related errors
	ErrNoSession    = errors.New("no session for subject")
	ErrInvalidToken = errors.New("invalid token")
)
