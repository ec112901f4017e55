package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for both an unknown identity and a
	// wrong password, so a caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when no token is presented or the
	// presented token resolves to no user.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError reports malformed or duplicate registration input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
