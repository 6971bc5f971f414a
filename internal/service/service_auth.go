package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/validators"
	"github.com/MKhiriev/fx-desk/models"
)

type authService struct {
	adapter   adapter.ServerAdapter
	session   SessionManager
	validator validators.Validator

	logger *logger.Logger
}

func NewAuthService(serverAdapter adapter.ServerAdapter, session SessionManager, logger *logger.Logger) AuthService {
	return &authService{
		adapter:   serverAdapter,
		session:   session,
		validator: validators.NewFormValidator(),
		logger:    logger,
	}
}

func (a *authService) Login(ctx context.Context, role models.Role, creds models.Credentials) (models.User, error) {
	if !role.Valid() {
		return models.User{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	creds.Email = strings.TrimSpace(creds.Email)
	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	result, err := a.adapter.Login(ctx, role, creds)
	if err != nil {
		return models.User{}, mapLoginError(err)
	}

	user := result.User
	if user.Role == "" {
		user.Role = role
	}
	if err = a.session.SignIn(ctx, role, result.Token, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrSessionStore, err)
	}

	a.logger.Info().
		Str("func", "authService.Login").
		Str("role", string(role)).
		Str("user_id", user.ID).
		Msg("signed in")
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Invalidate(ctx); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}

	a.logger.Info().Str("func", "authService.Logout").Msg("signed out")
	return nil
}

func (a *authService) Restore(ctx context.Context) (models.User, models.Role, error) {
	token, role := a.session.Token(ctx)
	if token == "" {
		return models.User{}, "", ErrNotSignedIn
	}

	user, err := a.session.User(ctx, role)
	if err != nil {
		// The token alone is enough to call the API; the header just shows less.
		a.logger.Debug().Err(err).Str("func", "authService.Restore").Msg("no stored user for token")
		user = models.User{Role: role}
	}
	return user, role, nil
}
