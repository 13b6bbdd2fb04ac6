// Package licensing implements the command/query service and the
// relationship maintenance logic for the registry.  Entity stores are
// independent key-value tables with no cascading constraints, so every
// cross-entity invariant (owner song lists, owner/licensee license
// lists) is enforced here.
package licensing

import (
	"errors"
	"fmt"
)

// Sentinel error kinds.  Every failure returned by the service wraps
// exactly one of these so that handlers can classify it with errors.Is
// while the message stays human-readable.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAlreadyApproved = errors.New("already approved")
)

// kindError carries a formatted message and unwraps to its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFoundf(format string, args ...any) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func invalidf(format string, args ...any) error {
	return &kindError{kind: ErrInvalidPayload, msg: fmt.Sprintf(format, args...)}
}

func unauthorizedf(format string, args ...any) error {
	return &kindError{kind: ErrUnauthorized, msg: fmt.Sprintf(format, args...)}
}

func alreadyApprovedf(format string, args ...any) error {
	return &kindError{kind: ErrAlreadyApproved, msg: fmt.Sprintf(format, args...)}
}
