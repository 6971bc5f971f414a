// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role identifies which kind of account a session token belongs to.
type Role string

const (
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleAgent      Role = "agent"
)

// RolePriority is the order in which role-scoped tokens are consulted when
// choosing the bearer token for an outbound request.
var RolePriority = []Role{RoleClient, RoleAdmin, RoleSuperAdmin, RoleAgent}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range RolePriority {
		if r == known {
			return true
		}
	}
	return false
}

// TokenKey returns the persistent storage key holding the role's bearer token.
func (r Role) TokenKey() string {
	return string(r) + "Token"
}

// UserKey returns the persistent storage key holding the role's user object.
func (r Role) UserKey() string {
	return string(r) + "User"
}

// SessionKeys lists every storage key owned by the session: the token and
// user entries of all roles.
func SessionKeys() []string {
	keys := make([]string, 0, len(RolePriority)*2)
	for _, r := range RolePriority {
		keys = append(keys, r.TokenKey(), r.UserKey())
	}
	return keys
}
