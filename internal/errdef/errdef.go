package errdef

import (
	"errors"
	"fmt"
)

// NewNotFound creates an error representing a record that could not be found.
func NewNotFound(format string, a ...any) error {
	return notFound{fmt.Errorf(format, a...)}
}

type notFound struct{ error }

// IsNotFound returns true if err represents a record that could not be found.
func IsNotFound(err error) bool {
	var e notFound
	return errors.As(err, &e)
}
