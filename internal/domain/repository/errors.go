package repository

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInvalidStatus  = errors.New("invalid task status")
)
