package stats

import "errors"

var (
	// ErrDuplicateKey is returned when a modifier ID is already present in a list.
	ErrDuplicateKey = errors.New("duplicate modifier id")
	// ErrKeyNotFound is returned when a modifier ID is absent from a list.
	ErrKeyNotFound = errors.New("modifier id not found")
)
