package domain

import (
	"errors"
	"strings"
)

// ErrTransactionNotFound is returned when a transaction id does not exist.
var ErrTransactionNotFound = errors.New("transaction not found")

// ValidationErrors collects every field-level violation found on a
// transaction and its items. It is a recoverable error: callers surface
// Messages to the client as a flat list.
type ValidationErrors struct {
	Messages []string
}

func (e *ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}

// AsValidationErrors unwraps err into a *ValidationErrors if it is one.
func AsValidationErrors(err error) (*ValidationErrors, bool) {
	var verr *ValidationErrors
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
