package auth

import (
	"errors"
	"fmt"
)

// Error is the error returned by the provider constructors and Test, the
// underlying Err contains the reason the session was rejected.
type Error struct {
	Err error
	Msg string
}

func (ae *Error) Error() string {
	var msg string = ae.Msg
	if msg == "" {
		msg = ae.Err.Error()
	}
	return fmt.Sprintf("authentication error: %s", msg)
}

func (ae *Error) Unwrap() error {
	return ae.Err
}

func (ae *Error) Is(target error) bool {
	return target == ae.Err
}

// IsInvalidAuthErr reports whether the error indicates stale or invalid
// credentials, as opposed to a transport failure.
func IsInvalidAuthErr(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return errors.Is(e.Err, ErrNotLoggedIn) || errors.Is(e.Err, ErrTokenExpired) || errors.Is(e.Err, ErrNoToken)
}
