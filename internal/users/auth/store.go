// Copyright (c) 2026 Warehouse 21. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/warehouse21/stockroom/internal/platform/sec"
)

// # Operator Data Access

// UserRepository defines the data access contract for operator accounts.
type UserRepository interface {

	/*
		Create persists a new operator account.

		Parameters:
		  - context: context.Context
		  - user: *User (ID populated on success)

		Returns:
		  - error: ErrConflict on duplicate username
	*/
	Create(context context.Context, user *User) error

	/*
		FindByUsername retrieves an account by its unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated account including password hash
		  - error: ErrNotFound if missing
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID retrieves an account by primary key.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *User: Hydrated account
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id int) (*User, error)

	/*
		HasAdmin reports whether any admin account exists. Gates the
		first-run setup flow.

		Parameters:
		  - context: context.Context

		Returns:
		  - bool: True when an admin is registered
		  - error: Database retrieval failures
	*/
	HasAdmin(context context.Context) (bool, error)
}

// # Session Data Access

// SessionRepository defines the contract for opaque session storage. Keys
// are token hashes; raw tokens never reach the store.
type SessionRepository interface {

	/*
		Set stores a session identity under a token hash with a TTL.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - identity: sec.Identity
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Set(context context.Context, tokenHash string, identity sec.Identity, ttl time.Duration) error

	/*
		Get resolves a token hash into the stored identity.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *sec.Identity: Stored identity
		  - error: apperr.NotFound when absent or expired
	*/
	Get(context context.Context, tokenHash string) (*sec.Identity, error)

	/*
		Delete removes a session.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, tokenHash string) error
}
