// Copyright (c) 2026 Warehouse 21. All rights reserved.

/*
Package auth implements operator accounts and cookie sessions.

The model is deliberately small: a single-tenant deployment with a handful
of operator accounts, one of which is the admin bootstrapped through the
first-run setup flow. Sessions are opaque random tokens stored hashed in
Redis; the browser only ever sees the raw token inside an HttpOnly cookie.
*/
package auth

import "time"

// User is an operator account.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is the login and setup payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
