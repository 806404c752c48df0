package services

import "errors"

var (
	ErrAlreadyStarted   = errors.New("session already started")
	ErrNotStarted       = errors.New("session not started")
	ErrNotAuthenticated = errors.New("not authenticated")
)
