// Package errs collects multiple independent teardown errors (closing SDL
// resources) into one reportable error.
package errs

import (
	"fmt"
	"strings"
)

// NewList returns a List with every non-nil error in errors appended.
func NewList(errors ...error) List {
	return List.Add(nil, errors...)
}

// List is a slice of errors that implements error, joining their messages.
type List []error

// Add appends every non-nil error in errors and returns the result.
func (e List) Add(errors ...error) List {
	for _, err := range errors {
		if err == nil {
			continue
		}

		e = append(e, err)
	}

	return e
}

// Errorf returns nil if the list is empty, otherwise fmt.Errorf(format, args...).
func (e List) Errorf(format string, args ...interface{}) error {
	if e == nil {
		return nil
	}

	return fmt.Errorf(format, args...)
}

// Error joins every error's message with ", ".
func (e List) Error() string {
	var slist []string
	for _, err := range e {
		slist = append(slist, err.Error())
	}
	return strings.Join(slist, ", ")
}
