package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicate     = errors.New("duplicate entry")
	ErrMalformedLine = errors.New("malformed ingredient line")
	ErrInvalidConfig = errors.New("invalid configuration")
)
