package errors

import "errors"

var (
	ErrEntryNotFound = errors.New("schedule entry not found")

	ErrEntryExists = errors.New("schedule entry already exists for this date")

	ErrInvalidID = errors.New("invalid resource ID format")
)
