package menu

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired    = errors.New("menu name is required")
	ErrInvalidCurrency = errors.New("unsupported currency")

	// -- Resource State --
	ErrMenuNotFound = errors.New("menu not found")
)
