package repository

import "errors"

// Sentinel errors shared by all repositories. Services and handlers match
// these with errors.Is; the raw pgx errors never leave this package.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrStudentMissing = errors.New("referenced student does not exist")
)
