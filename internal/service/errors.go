package service

import "errors"

// Error kinds surfaced by the services. Handlers discriminate with errors.Is;
// control flow never depends on message text.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound deliberately conflates "does not exist" and "belongs to
	// someone else" so responses never leak other users' resources.
	ErrNotFound = errors.New("resource not found")

	ErrAlreadyReviewed = errors.New("you have already reviewed this game")
	ErrAlreadyInList   = errors.New("game is already in this list")
)
