// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it leaves the client.
//
// Core concepts:
//   - Validator: generic interface to validate a form value.
//     Supports optional field-level scoping for targeted validation.
//
// The same rules back the login form and the back-office forms (payment
// methods, leverage groups, exchange rates, deposit review), so the user sees
// a precise message instead of a generic 400 from the backend.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
