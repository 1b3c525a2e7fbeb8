package service

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Every operation error wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not_found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid_input")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream_failure")
)

var (
	ErrTableNotFound     = kindError(ErrNotFound, "table not found")
	ErrMenuItemNotFound  = kindError(ErrNotFound, "menu item not found")
	ErrMenuNotFound      = kindError(ErrNotFound, "menu not found")
	ErrOrderNotFound     = kindError(ErrNotFound, "order not found")
	ErrSessionNotFound   = kindError(ErrNotFound, "session not found")
	ErrEmptyCart         = kindError(ErrInvalidInput, "order must contain at least one item")
	ErrInvalidQuantity   = kindError(ErrInvalidInput, "quantity must be a positive integer")
	ErrInvalidStatus     = kindError(ErrInvalidInput, "unknown status value")
	ErrInvalidPayload    = kindError(ErrInvalidInput, "invalid payload")
	ErrInvalidTransition = kindError(ErrConflict, "status transition not allowed")
	ErrAlreadyClosed     = kindError(ErrConflict, "session already closed")
	ErrSessionConflict   = kindError(ErrConflict, "table session changed concurrently")
	ErrTableBusy         = kindError(ErrConflict, "table is being updated, retry")
)

type serviceError struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &serviceError{kind: kind, msg: msg}
}

func (e *serviceError) Error() string { return e.msg }

func (e *serviceError) Unwrap() error { return e.kind }

// invalid builds an input error carrying a field-specific message.
func invalid(format string, args ...interface{}) error {
	return kindError(ErrInvalidInput, fmt.Sprintf(format, args...))
}

// upstream marks a storage or broker failure.
func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
}

// Kind returns the taxonomy kind of err, or nil for unclassified errors.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrForbidden, ErrInvalidInput, ErrConflict, ErrUpstream} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
