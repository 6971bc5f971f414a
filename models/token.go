// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the claim set of a session token.
//
// The subject holds the user ID; Role tells which role-scoped storage slot
// the token belongs to.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role Role   `json:"role"`
	Name string `json:"name,omitempty"`
}
