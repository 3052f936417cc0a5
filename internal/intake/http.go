// Copyright (c) 2026 Warehouse 21. All rights reserved.

package intake

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/warehouse21/stockroom/internal/platform/request"
	"github.com/warehouse21/stockroom/internal/platform/respond"
	"github.com/warehouse21/stockroom/internal/platform/validate"
)

// # Handler Implementation

// Handler exposes the intake chat surface.
type Handler struct {
	dispatcher *Dispatcher
}

// NewHandler constructs an intake [Handler].
func NewHandler(dispatcher *Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// Routes returns a [chi.Router] for the intake endpoints. Admin gating is
// layered on when mounting in the API server.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/chat", handler.chat)
	return router
}

/*
POST /api/v1/intake/chat.

Description: Runs one message through the dispatcher. All failures surface
as 200 responses with an in-persona advisory string; the endpoint never
returns a structured error for service-side problems.

Request (Body):
  - message: string
  - history: list (accepted, currently unused for re-grounding)

Response:
  - 200: {response: string}
  - 400: Missing or empty message
*/
func (handler *Handler) chat(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Message string `json:"message"`
		History []any  `json:"history"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).Required("message", input.Message).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reply := handler.dispatcher.Handle(request.Context(), input.Message)
	respond.OK(writer, map[string]string{"response": reply})
}
