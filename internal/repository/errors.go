package repository

import "errors"

var (
	// ErrNotFound indicates an entity was not located.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateEmail indicates the email uniqueness constraint was hit.
	ErrDuplicateEmail = errors.New("repository: email already registered")
	// ErrInvalidArgument indicates the storage layer rejected the input.
	ErrInvalidArgument = errors.New("repository: invalid argument")
)
