package session

import "errors"

// Fallback messages for session operations
const (
	FallbackLogin                = "Login failed"
	FallbackRegisterUser         = "Registration failed"
	FallbackRegisterOrganization = "NGO registration failed"
)

var (
	// ErrNoRemote is returned by Open when no remote service is supplied
	ErrNoRemote = errors.New("session: remote service is required")
	// ErrNotAuthenticated is returned by operations that need a logged-in actor
	ErrNotAuthenticated = errors.New("session: not logged in")
	// ErrInvalidRole is returned when an update names an unknown role
	ErrInvalidRole = errors.New("session: invalid role")
)

// AuthError is returned by failed login and registration. Message is the remote
// message verbatim, or the operation's fallback when the service gave none.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
