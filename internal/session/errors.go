package session

import "errors"

var (
	// ErrNoSession is returned when no token is stored for the requested role.
	ErrNoSession = errors.New("no active session")
	// ErrUnknownRole is returned for a role outside models.RolePriority.
	ErrUnknownRole = errors.New("unknown role")
	// ErrEmptyToken is returned by SignIn for an empty token.
	ErrEmptyToken = errors.New("empty token")
)
