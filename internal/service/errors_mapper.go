// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/fx-desk/internal/adapter"
)

// mapAdapterError adds the service error matching a transport failure. The
// adapter error stays in the chain, so adapter.UserMessage still finds the
// server's message.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if apiErr, ok := adapter.AsAPIError(err); ok && apiErr.Status == http.StatusConflict {
		return fmt.Errorf("%w: %w", ErrAlreadyReviewed, err)
	}
	return err
}

// mapLoginError differs from mapAdapterError: login is anonymous, so a 401
// means wrong credentials and a 403 an account of another role.
func mapLoginError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrRoleNotAllowed, err)
	}
	return mapAdapterError(err)
}
