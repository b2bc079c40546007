package user

import "errors"

var (
	// -- Validation & Input --
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailRequired    = errors.New("email is required")
)
