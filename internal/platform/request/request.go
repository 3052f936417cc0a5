// Copyright (c) 2026 Warehouse 21. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/ctxutil"
	"github.com/warehouse21/stockroom/internal/platform/sec"
	"github.com/warehouse21/stockroom/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// Returns validate.ErrInvalidJSON if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam retrieves a named URL parameter and converts it to an integer.
// Returns a VALIDATION_ERROR if the value is not a number.
func IntParam(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.ValidationError("Invalid "+name, apperr.FieldError{
			Field:   name,
			Message: "Must be an integer",
		})
	}
	return value, nil
}

// User extracts the authenticated operator from the request context.
// Returns nil if the request is not authenticated.
func User(request *http.Request) *sec.Identity {
	return ctxutil.GetUser(request.Context())
}

// RequiredUser ensures the request is authenticated and returns the operator.
func RequiredUser(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetUser(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}
