// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warehouse21/stockroom/internal/platform/apperr"
	requestutil "github.com/warehouse21/stockroom/internal/platform/request"
	"github.com/warehouse21/stockroom/internal/platform/respond"
	"github.com/warehouse21/stockroom/pkg/pagination"
)

// maxIconUploadBytes bounds the multipart memory footprint per request.
const maxIconUploadBytes = 5 << 20

// # Handler Implementation

// Handler implements the HTTP layer for catalog operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with catalog endpoints.
// Authentication middleware is layered on when mounting in the API server.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Hierarchy
	router.Get("/categories", handler.listCategories)
	router.Post("/categories", handler.createCategory)

	// ## SubCategories (multipart: icon upload alongside fields)
	router.Post("/subcategories", handler.createSubCategory)
	router.Put("/subcategories/{id}", handler.renameSubCategory)
	router.Delete("/subcategories/{id}", handler.deleteSubCategory)

	// ## Items
	router.Get("/items", handler.listItems)
	router.Post("/items", handler.createItem)
	router.Get("/items/{id}", handler.getItem)
	router.Patch("/items/{id}/quantity", handler.updateItemQuantity)
	router.Delete("/items/{id}", handler.deleteItem)

	return router
}

// # Category Endpoints

/*
GET /api/v1/catalog/categories.

Description: Returns the full hierarchy, each category with its owned
subcategories.

Response:
  - 200: []Category
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

/*
POST /api/v1/catalog/categories.

Request (Body):
  - name: string

Response:
  - 201: Category
  - 400: Validation failure (empty or unsluggable name)
  - 409: Duplicate name or slug
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

// # SubCategory Endpoints

/*
POST /api/v1/catalog/subcategories.

Description: Creates a subcategory from a multipart form. The icon part is
optional; a missing or broken upload falls back to the generic icon.

Request (multipart/form-data):
  - name: string
  - category_id: int
  - icon: file (optional)

Response:
  - 201: SubCategory
  - 400: Validation failure
  - 404: Parent category not found
  - 409: Duplicate slug
*/
func (handler *Handler) createSubCategory(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(maxIconUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Expected multipart form data"))
		return
	}

	categoryID, err := strconv.Atoi(request.FormValue("category_id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("category_id must be an integer"))
		return
	}

	iconData, err := readIconPart(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sub, err := handler.service.CreateSubCategory(request.Context(), SubCategoryInput{
		Name:       request.FormValue("name"),
		CategoryID: categoryID,
		IconData:   iconData,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sub)
}

/*
PUT /api/v1/catalog/subcategories/{id}.

Description: Renames a subcategory and cascades the slug change onto
referencing items. Icon replacement here is strict: undecodable bytes abort
the whole rename.

Request (multipart/form-data):
  - name: string
  - icon: file (optional)

Response:
  - 200: SubCategory (new state)
  - 404: Subcategory not found
  - 409: New slug collides
  - 422: Icon could not be processed
*/
func (handler *Handler) renameSubCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(maxIconUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Expected multipart form data"))
		return
	}

	iconData, err := readIconPart(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sub, err := handler.service.RenameSubCategory(request.Context(), id, SubCategoryUpdate{
		Name:     request.FormValue("name"),
		IconData: iconData,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sub)
}

/*
DELETE /api/v1/catalog/subcategories/{id}.

Description: Removes the subcategory only. Referencing items keep their old
slug and icon.

Response:
  - 204: Removed
  - 404: Subcategory not found
*/
func (handler *Handler) deleteSubCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSubCategory(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Item Endpoints

/*
GET /api/v1/catalog/items.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Item: Paginated list
*/
func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	items, total, err := handler.service.ListItems(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/catalog/items.

Request (Body):
  - ItemInput JSON object

Response:
  - 201: Item (icon reference frozen at this point)
  - 400: Validation failure
  - 404: Category not found
*/
func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	var input ItemInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateItem(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
GET /api/v1/catalog/items/{id}.

Response:
  - 200: Item
  - 404: Item not found
*/
func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetItem(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
PATCH /api/v1/catalog/items/{id}/quantity.

Request (Body):
  - quantity: int (stored as given, no clamping)

Response:
  - 200: Item (new state)
  - 404: Item not found
*/
func (handler *Handler) updateItemQuantity(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateItemQuantity(request.Context(), id, input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
DELETE /api/v1/catalog/items/{id}.

Response:
  - 204: Removed
  - 404: Item not found
*/
func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteItem(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// readIconPart extracts the optional "icon" multipart file. Absence is not
// an error; read failures are.
func readIconPart(request *http.Request) ([]byte, error) {
	file, _, err := request.FormFile("icon")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperr.ValidationError("Icon upload could not be read")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxIconUploadBytes))
	if err != nil {
		return nil, apperr.ValidationError("Icon upload could not be read")
	}
	return data, nil
}
