package services

import "errors"

var (
	// ErrLocked rejects a login submission during an active lockout.
	ErrLocked = errors.New("login temporarily locked")
	// ErrSubmissionInFlight rejects a second submission of a form whose
	// previous submission has not finished.
	ErrSubmissionInFlight = errors.New("submission already in progress")
)
