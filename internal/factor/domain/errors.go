package domain

import "errors"

var (
	// ErrFactorNotFound is returned when no factor row matches a lookup key.
	ErrFactorNotFound = errors.New("emission factor not found")
)
