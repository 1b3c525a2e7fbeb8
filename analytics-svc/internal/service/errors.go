package service

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid_input")
	ErrUpstream     = errors.New("upstream_failure")
)

var ErrInvalidTimeRange = fmt.Errorf("%w: timeRange must be one of day, week, month, year", ErrInvalidInput)

func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
}

// Kind returns the error kind of err, or nil for unclassified errors.
func Kind(err error) error {
	for _, kind := range []error{ErrForbidden, ErrInvalidInput, ErrUpstream} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
