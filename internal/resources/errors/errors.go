package errors

import "errors"

var (
	ErrNotFound  = errors.New("resource not found")
	ErrInvalidID = errors.New("invalid resource ID")
	ErrDuplicate = errors.New("resource already exists")
)
