package auth

import "errors"

// Callers match these with errors.Is. Returned errors are oops-wrapped and
// carry an AUTH_* code.
var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMalformedRole      = errors.New("malformed role")
	ErrStoreUnavailable   = errors.New("credential store unavailable")
)

// IsUnauthorized reports whether err must reach the client as the single
// generic unauthorized response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrMalformedRole)
}
