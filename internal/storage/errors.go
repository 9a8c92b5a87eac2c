package storage

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrEmptyString    = errors.New("empty string parameter")
)
