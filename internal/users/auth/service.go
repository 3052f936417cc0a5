// Copyright (c) 2026 Warehouse 21. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/constants"
	"github.com/warehouse21/stockroom/internal/platform/sec"
	"github.com/warehouse21/stockroom/internal/platform/validate"
)

// # Service Layer

// Service orchestrates account bootstrap, login, and session lifecycle.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	logger   *slog.Logger
}

// NewService constructs an auth [Service].
func NewService(users UserRepository, sessions SessionRepository, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

/*
SetupRequired reports whether the first-run setup flow is still open.

Parameters:
  - context: context.Context

Returns:
  - bool: True when no admin account exists yet
  - error: Retrieval errors
*/
func (service *Service) SetupRequired(context context.Context) (bool, error) {
	hasAdmin, err := service.users.HasAdmin(context)
	if err != nil {
		return false, err
	}
	return !hasAdmin, nil
}

/*
Setup bootstraps the single admin account.

Description: Available exactly once, while no admin exists. Any later call
is rejected regardless of credentials, so a deployed instance cannot grow a
second admin through this path.

Parameters:
  - context: context.Context
  - credentials: Credentials

Returns:
  - *User: Created admin account
  - error: Validation, forbidden, or conflict errors
*/
func (service *Service) Setup(context context.Context, credentials Credentials) (*User, error) {
	validator := (&validate.Validator{}).
		Required("username", credentials.Username).
		MinLen("username", credentials.Username, 3).
		MaxLen("username", credentials.Username, 50).
		Required("password", credentials.Password).
		MinLen("password", credentials.Password, 8)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	required, err := service.SetupRequired(context)
	if err != nil {
		return nil, err
	}
	if !required {
		return nil, apperr.Forbidden("Setup already completed")
	}

	hash, err := sec.HashPassword(credentials.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	admin := &User{
		Username:     credentials.Username,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := service.users.Create(context, admin); err != nil {
		return nil, err
	}

	service.logger.Info("admin account bootstrapped", "username", admin.Username, "id", admin.ID)
	return admin, nil
}

/*
Login verifies credentials and mints a new session.

Description: The raw token is returned for the cookie; only its hash is
stored. Unknown usernames and wrong passwords are indistinguishable to the
caller.

Parameters:
  - context: context.Context
  - credentials: Credentials

Returns:
  - string: Raw session token
  - *User: Authenticated account
  - error: Unauthorized on any credential mismatch
*/
func (service *Service) Login(context context.Context, credentials Credentials) (string, *User, error) {
	validator := (&validate.Validator{}).
		Required("username", credentials.Username).
		Required("password", credentials.Password)
	if err := validator.Err(); err != nil {
		return "", nil, err
	}

	user, err := service.users.FindByUsername(context, credentials.Username)
	if err != nil {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}
	if !sec.CheckPasswordHash(credentials.Password, user.PasswordHash) {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := sec.GenerateSecureToken(constants.SessionTokenLength)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	identity := sec.Identity{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
	if err := service.sessions.Set(context, sec.HashToken(token), identity, constants.SessionTTL); err != nil {
		return "", nil, apperr.Internal(err)
	}

	service.logger.Info("operator logged in", "username", user.Username, "id", user.ID)
	return token, user, nil
}

/*
Logout destroys the session behind a raw token.

Parameters:
  - context: context.Context
  - token: string (raw cookie value)

Returns:
  - error: Deletion failures
*/
func (service *Service) Logout(context context.Context, token string) error {
	return service.sessions.Delete(context, sec.HashToken(token))
}

/*
ResolveSession resolves a raw cookie token into an operator identity.
Implements the middleware session contract.

Parameters:
  - request: *http.Request (supplies the context)
  - token: string (raw cookie value)

Returns:
  - *sec.Identity: Stored identity
  - error: NotFound for unknown or expired sessions
*/
func (service *Service) ResolveSession(request *http.Request, token string) (*sec.Identity, error) {
	return service.sessions.Get(request.Context(), sec.HashToken(token))
}
