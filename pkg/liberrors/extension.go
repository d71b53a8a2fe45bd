// Package liberrors contains errors returned by the library.
package liberrors

import (
	"fmt"
)

// ErrExtensionFormat is returned when the value of a header extension is malformed.
type ErrExtensionFormat struct {
	URI    string
	Reason string
}

// Error implements the error interface.
func (e ErrExtensionFormat) Error() string {
	return fmt.Sprintf("invalid header extension %s: %s", e.URI, e.Reason)
}

// ErrExtensionUnrecognized is returned when a header extension ID is not bound to any extension.
type ErrExtensionUnrecognized struct {
	ID uint8
}

// Error implements the error interface.
func (e ErrExtensionUnrecognized) Error() string {
	return fmt.Sprintf("unrecognized header extension ID %d", e.ID)
}

// ErrExtensionInvalidValue is returned when a value can't be written into a header extension.
type ErrExtensionInvalidValue struct {
	URI    string
	Reason string
}

// Error implements the error interface.
func (e ErrExtensionInvalidValue) Error() string {
	return fmt.Sprintf("invalid value for header extension %s: %s", e.URI, e.Reason)
}
