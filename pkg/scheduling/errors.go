package scheduling

import "errors"

var (
	ErrInvalidRange   = errors.New("invalid date range")
	ErrInvalidPattern = errors.New("invalid weekly pattern")
)
