package services

import (
	"errors"
	"fmt"
	"strings"
)

// The service reports outcomes as typed errors; translating them into
// HTTP responses is the routes layer's job alone.
var (
	// ErrAuthRequired means no valid caller identity reached the service.
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden means the caller is authenticated but not the owner.
	ErrForbidden = errors.New("not authorized")
)

// ValidationError carries every failed field message at once; fields are
// all checked before reporting, never fail-fast on the first bad one.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// StoreError wraps an unexpected persistence failure. The generic
// category is always part of the message so raw driver detail is never
// the only signal.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
