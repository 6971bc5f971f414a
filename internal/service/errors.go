package service

import "errors"

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotAllowed     = errors.New("account is not allowed to sign in with this role")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrSessionStore       = errors.New("session could not be saved")

	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyReviewed = errors.New("deposit was already reviewed")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrNoTicket        = errors.New("ticket id is required")
	ErrNoDocumentType  = errors.New("document type is required")
)
