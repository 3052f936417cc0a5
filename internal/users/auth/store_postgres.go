// Copyright (c) 2026 Warehouse 21. All rights reserved.

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warehouse21/stockroom/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository constructs a PostgreSQL backed account store.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
Create persists a new operator account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: ErrConflict on duplicate username
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, password_hash, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := repository.db.QueryRow(context, query, user.Username, user.PasswordHash, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}
	return nil
}

/*
FindByUsername retrieves an account row by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account
  - error: ErrNotFound if missing
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users
		WHERE username = $1
	`
	user := &User{}
	err := repository.db.QueryRow(context, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}
	return user, nil
}

/*
FindByID retrieves an account row by primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *User: Hydrated account
  - error: ErrNotFound if missing
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int) (*User, error) {
	const query = `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users
		WHERE id = $1
	`
	user := &User{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

/*
HasAdmin reports whether any admin account exists.

Parameters:
  - context: context.Context

Returns:
  - bool: True when an admin row exists
  - error: Database retrieval failures
*/
func (repository *PostgresUserRepository) HasAdmin(context context.Context) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM users WHERE is_admin)`).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "has_admin")
	}
	return exists, nil
}
