// Copyright (c) 2026 Warehouse 21. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/constants"
	requestutil "github.com/warehouse21/stockroom/internal/platform/request"
	"github.com/warehouse21/stockroom/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for operator authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/setup", handler.setupStatus)
	router.Post("/setup", handler.setup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)

	return router
}

/*
GET /api/v1/auth/setup.

Response:
  - 200: {setup_required: bool}
*/
func (handler *Handler) setupStatus(writer http.ResponseWriter, request *http.Request) {
	required, err := handler.service.SetupRequired(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"setup_required": required})
}

/*
POST /api/v1/auth/setup.

Description: First-run admin bootstrap. Logs the new admin in immediately.

Request (Body):
  - username: string
  - password: string

Response:
  - 201: User (session cookie set)
  - 403: Setup already completed
*/
func (handler *Handler) setup(writer http.ResponseWriter, request *http.Request) {
	var credentials Credentials
	if err := requestutil.DecodeJSON(request, &credentials); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Setup(request.Context(), credentials); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, user, err := handler.service.Login(request.Context(), credentials)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, token)
	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login.

Request (Body):
  - username: string
  - password: string

Response:
  - 200: User (session cookie set)
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var credentials Credentials
	if err := requestutil.DecodeJSON(request, &credentials); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, user, err := handler.service.Login(request.Context(), credentials)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, token)
	respond.OK(writer, user)
}

/*
POST /api/v1/auth/logout.

Description: Destroys the session server-side and clears the cookie. Safe
to call without a session.

Response:
  - 204: Logged out
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		if err := handler.service.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	clearSessionCookie(writer)
	respond.NoContent(writer)
}

/*
GET /api/v1/auth/me.

Response:
  - 200: Identity of the current operator
  - 401: No valid session
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}
	respond.OK(writer, identity)
}

func setSessionCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(constants.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
