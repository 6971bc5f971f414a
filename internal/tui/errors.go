// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/realtime"
	"github.com/MKhiriev/fx-desk/internal/service"
	"github.com/MKhiriev/fx-desk/internal/validators"
)

// humanizeError turns a service error into the line shown on a form.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Wrong email or password"
	case errors.Is(err, service.ErrRoleNotAllowed):
		return "This account cannot sign in with the selected role"
	case errors.Is(err, validators.ErrEmptyEmail), errors.Is(err, validators.ErrEmptyPassword):
		return "Email and password are required"
	case errors.Is(err, validators.ErrInvalidEmail):
		return "Enter a valid email address"
	case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, realtime.ErrEmptyMessage):
		return "Message is empty"
	case errors.Is(err, service.ErrSessionStore):
		return "Could not save the session on this device"
	}
	return adapter.UserMessage(err)
}
