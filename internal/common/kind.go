package common

import (
	"errors"
	"fmt"
)

// Kind classifies an error returned by the auth engine. Transports map
// kinds to wire-level status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindUnauthorized
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// KindOf reports the kind of err. Anything that does not wrap one of the
// service-level sentinels is internal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrorConflict):
		return KindConflict
	case errors.Is(err, ErrorUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrorValidation):
		return KindValidation
	default:
		return KindInternal
	}
}

// NewError wraps a service-level sentinel with a caller-facing message.
// The sentinel stays reachable through errors.Is.
//
//	return nil, common.NewError(common.ErrorConflict, "email already registered")
func NewError(sentinel error, msg string) error {
	return fmt.Errorf("%s: %w", msg, sentinel)
}
