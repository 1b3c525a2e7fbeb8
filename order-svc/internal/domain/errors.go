package domain

import "errors"

// ErrSessionClosed is returned by storage when an order targets a session that is no longer active.
var ErrSessionClosed = errors.New("session is no longer active")

// ErrTableLocked is returned by a table lock that could not be acquired in time.
var ErrTableLocked = errors.New("table lock not acquired")
