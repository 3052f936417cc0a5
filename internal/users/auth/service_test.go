// Copyright (c) 2026 Warehouse 21. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/dberr"
	"github.com/warehouse21/stockroom/internal/platform/sec"
	"github.com/warehouse21/stockroom/internal/users/auth"
)

type fakeUserRepository struct {
	users  map[string]*auth.User
	nextID int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}, nextID: 1}
}

func (fake *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := fake.users[user.Username]; exists {
		return apperr.Conflict("A record with this identifier already exists")
	}
	user.ID = fake.nextID
	user.CreatedAt = time.Now()
	fake.nextID++
	stored := *user
	fake.users[user.Username] = &stored
	return nil
}

func (fake *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := fake.users[username]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeUserRepository) FindByID(_ context.Context, id int) (*auth.User, error) {
	for _, user := range fake.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeUserRepository) HasAdmin(_ context.Context) (bool, error) {
	for _, user := range fake.users {
		if user.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}

type fakeSessionRepository struct {
	sessions map[string]sec.Identity
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]sec.Identity{}}
}

func (fake *fakeSessionRepository) Set(_ context.Context, tokenHash string, identity sec.Identity, _ time.Duration) error {
	fake.sessions[tokenHash] = identity
	return nil
}

func (fake *fakeSessionRepository) Get(_ context.Context, tokenHash string) (*sec.Identity, error) {
	if identity, ok := fake.sessions[tokenHash]; ok {
		return &identity, nil
	}
	return nil, apperr.NotFound("Session")
}

func (fake *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(fake.sessions, tokenHash)
	return nil
}

func newTestService(t *testing.T) (*auth.Service, *fakeSessionRepository) {
	t.Helper()
	sessions := newFakeSessionRepository()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return auth.NewService(newFakeUserRepository(), sessions, logger), sessions
}

/*
TestSetup_BootstrapsSingleAdmin verifies the first-run flow: one admin can
be created, after which setup is closed for good.
*/
func TestSetup_BootstrapsSingleAdmin(t *testing.T) {
	service, _ := newTestService(t)

	required, err := service.SetupRequired(context.Background())
	require.NoError(t, err)
	assert.True(t, required)

	admin, err := service.Setup(context.Background(), auth.Credentials{
		Username: "quartermaster",
		Password: "vault-door-21",
	})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.NotZero(t, admin.ID)

	required, err = service.SetupRequired(context.Background())
	require.NoError(t, err)
	assert.False(t, required)

	_, err = service.Setup(context.Background(), auth.Credentials{
		Username: "intruder",
		Password: "letmein-please",
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
}

/*
TestSetup_ValidatesCredentials verifies minimum credential requirements.
*/
func TestSetup_ValidatesCredentials(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Setup(context.Background(), auth.Credentials{
		Username: "qm",
		Password: "short",
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestLogin_SessionLifecycle verifies login, session resolution, and logout
against the hashed-token store.
*/
func TestLogin_SessionLifecycle(t *testing.T) {
	service, sessions := newTestService(t)

	_, err := service.Setup(context.Background(), auth.Credentials{
		Username: "quartermaster",
		Password: "vault-door-21",
	})
	require.NoError(t, err)

	token, user, err := service.Login(context.Background(), auth.Credentials{
		Username: "quartermaster",
		Password: "vault-door-21",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, user.IsAdmin)

	// Only the hash reaches the store.
	_, rawStored := sessions.sessions[token]
	assert.False(t, rawStored)
	_, hashStored := sessions.sessions[sec.HashToken(token)]
	assert.True(t, hashStored)

	request := httptest.NewRequest("GET", "/", nil)
	identity, err := service.ResolveSession(request, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.True(t, identity.IsAdmin)

	require.NoError(t, service.Logout(context.Background(), token))
	_, err = service.ResolveSession(request, token)
	require.Error(t, err)
}

/*
TestLogin_RejectsBadCredentials verifies that unknown usernames and wrong
passwords fail identically.
*/
func TestLogin_RejectsBadCredentials(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Setup(context.Background(), auth.Credentials{
		Username: "quartermaster",
		Password: "vault-door-21",
	})
	require.NoError(t, err)

	_, _, err = service.Login(context.Background(), auth.Credentials{
		Username: "quartermaster",
		Password: "wrong-password",
	})
	wrongPassword := apperr.As(err)
	require.NotNil(t, wrongPassword)

	_, _, err = service.Login(context.Background(), auth.Credentials{
		Username: "nobody",
		Password: "vault-door-21",
	})
	unknownUser := apperr.As(err)
	require.NotNil(t, unknownUser)

	assert.Equal(t, "UNAUTHORIZED", wrongPassword.Code)
	assert.Equal(t, wrongPassword.Message, unknownUser.Message)
}
