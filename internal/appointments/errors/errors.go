package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	ErrTimeConflict = errors.New("appointment time conflicts with an existing appointment")

	ErrTerminalStatus = errors.New("appointment is in a terminal status and cannot change")
)
