package api

import (
	"errors"
	"fmt"

	"github.com/berkaynayman/qr-menu/internal/user"
)

// ErrNotAuthenticated is returned before any network call when an
// authenticated endpoint is hit without a stored token.
var ErrNotAuthenticated = errors.New("user is not authenticated")

// Error is a non-2xx response from the backend, carrying the message
// field the server put in the body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// errorBody is the shape every backend error response uses.
type errorBody struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// loginResponse tolerates the backend omitting the user object; see
// Client.Login for the fallback.
type loginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}
