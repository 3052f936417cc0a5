// Copyright (c) 2026 Warehouse 21. All rights reserved.

package middleware

import (
	"net/http"

	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/constants"
	"github.com/warehouse21/stockroom/internal/platform/ctxutil"
	"github.com/warehouse21/stockroom/internal/platform/respond"
	"github.com/warehouse21/stockroom/internal/platform/sec"
)

// SessionResolver defines the interface needed to resolve session cookies.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the auth
// service implementation, allowing us to inject fakes during unit testing.
type SessionResolver interface {
	ResolveSession(r *http.Request, token string) (*sec.Identity, error)
}

// Authenticate resolves the session cookie into an operator identity.
//
// # Flow
//  1. Check for the session cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, resolve the opaque token via [SessionResolver].
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// An invalid or expired cookie is treated as anonymous, not as an error:
// the gate that requires identity is [RequireAdmin], not this middleware.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			identity, err := resolver.ResolveSession(request, cookie.Value)
			if err != nil || identity == nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithUser(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests whose operator lacks the admin flag.
//
// The catalog mutation and intake surfaces are admin-only; read surfaces
// are open to any authenticated operator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetUser(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		if !identity.IsAdmin {
			respond.Error(writer, request, apperr.Forbidden("Not authorized"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
