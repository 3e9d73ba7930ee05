// Package apperr holds the sentinel errors shared across crewboard packages.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrBlocked      = errors.New("commit blocked by validation errors")
	ErrUnknownToken = errors.New("unknown delete token")
	ErrUnknownField = errors.New("unknown form field")
)
