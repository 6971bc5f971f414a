// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session owns the process-wide authentication context: the
// role-scoped bearer tokens and user objects kept in local storage.
//
// Every reader and writer goes through [Session]; nothing else touches the
// session keys in storage directly.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/store"
	"github.com/MKhiriev/fx-desk/internal/utils"
	"github.com/MKhiriev/fx-desk/models"
)

// Session reads and writes role-scoped credentials.
//
// Invalidate holds the write lock for the whole multi-key delete, so a
// concurrent Token call observes either the full token set or none of it.
type Session struct {
	mu      sync.RWMutex
	storage store.LocalStorage
	logger  *logger.Logger

	listenersMu sync.Mutex
	listeners   []func()
}

// New returns a Session over storage.
func New(storage store.LocalStorage, log *logger.Logger) *Session {
	return &Session{
		storage: storage,
		logger:  log,
	}
}

// Token returns the first stored token in [models.RolePriority] order and the
// role it belongs to. An empty token means there is no session.
func (s *Session) Token(ctx context.Context) (string, models.Role) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, role := range models.RolePriority {
		token, err := s.storage.Get(ctx, role.TokenKey())
		if err == nil && token != "" {
			return token, role
		}
		if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
			s.logger.Err(err).Str("func", "Session.Token").Str("role", string(role)).Msg("failed to read token")
		}
	}
	return "", ""
}

// TokenFor returns the token stored for one role.
func (s *Session) TokenFor(ctx context.Context, role models.Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	token, err := s.storage.Get(ctx, role.TokenKey())
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("read %s token: %w", role, err)
	}
	return token, nil
}

// Active reports whether any role has a stored token.
func (s *Session) Active(ctx context.Context) bool {
	token, _ := s.Token(ctx)
	return token != ""
}

// User returns the user object stored for role.
func (s *Session) User(ctx context.Context, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	s.mu.RLock()
	raw, err := s.storage.Get(ctx, role.UserKey())
	s.mu.RUnlock()

	if errors.Is(err, store.ErrKeyNotFound) {
		return models.User{}, ErrNoSession
	}
	if err != nil {
		return models.User{}, fmt.Errorf("read %s user: %w", role, err)
	}

	var user models.User
	if err = json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, fmt.Errorf("decode %s user: %w", role, err)
	}
	return user, nil
}

// SignIn stores the token and user object of role together.
func (s *Session) SignIn(ctx context.Context, role models.Role, token string, user models.User) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if token == "" {
		return ErrEmptyToken
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.SetMany(ctx, map[string]string{
		role.TokenKey(): token,
		role.UserKey():  string(rawUser),
	})
}

// SignOut removes one role's token and user object.
func (s *Session) SignOut(ctx context.Context, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.Delete(ctx, role.TokenKey(), role.UserKey())
}

// Invalidate removes the tokens and user objects of every role at once and
// then notifies OnInvalidate listeners.
func (s *Session) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	err := s.storage.Delete(ctx, models.SessionKeys()...)
	s.mu.Unlock()

	if err != nil {
		s.logger.Err(err).Str("func", "Session.Invalidate").Msg("failed to clear session")
		return fmt.Errorf("invalidate session: %w", err)
	}
	s.logger.Info().Str("func", "Session.Invalidate").Msg("session invalidated")

	s.listenersMu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.listenersMu.Unlock()
	for _, fn := range listeners {
		fn()
	}
	return nil
}

// OnInvalidate registers fn to run after every successful Invalidate.
func (s *Session) OnInvalidate(fn func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// ExpiresAt returns the expiry recorded in the active token. It does not
// verify the signature; the backend stays the authority.
func (s *Session) ExpiresAt(ctx context.Context) (time.Time, error) {
	token, _ := s.Token(ctx)
	if token == "" {
		return time.Time{}, ErrNoSession
	}

	claims, err := utils.ParseClaimsUnverified(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("inspect token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
