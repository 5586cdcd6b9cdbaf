// Package errors declares the sentinel errors shared by the hiring
// services. Services wrap them with fmt.Errorf("%w: ...") and the HTTP
// layer maps them to status codes with errors.Is.
package errors

import (
	"fmt"
)

var (
	// ErrUnauthenticated means no valid identity accompanied the request.
	ErrUnauthenticated = fmt.Errorf("unauthenticated")
	// ErrForbidden means the identity is valid but not permitted to act.
	ErrForbidden = fmt.Errorf("forbidden")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = fmt.Errorf("not found")
	// ErrConflict means a duplicate submission or a lost concurrent update.
	ErrConflict = fmt.Errorf("conflict")
	// ErrInvalidTransition means the requested status is not a direct
	// successor of the application's current status.
	ErrInvalidTransition = fmt.Errorf("invalid transition")
	// ErrInvalidInput means a required field is missing or malformed.
	ErrInvalidInput = fmt.Errorf("invalid input")
)
