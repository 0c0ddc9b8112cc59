package query

import (
	"errors"
	"fmt"
)

// UserError is a validation failure the caller can fix: an empty query, an
// unknown category, a negative offset. Boundaries show its message to the
// caller instead of treating it as an internal failure.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func userErrorf(format string, args ...any) error {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// IsUserError reports whether err carries a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
