// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the authentication middlewares. Their texts are sent
// to the caller in the error member of the envelope.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrTokenExpired = errors.New("token is expired")

	// ErrRoleNotAllowed is returned when a valid token belongs to a role the
	// route is not open to.
	ErrRoleNotAllowed = errors.New("access denied for this role")

	errInvalidJSON = errors.New("invalid JSON was passed")
)
