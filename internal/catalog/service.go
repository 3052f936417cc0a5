// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/constants"
	"github.com/warehouse21/stockroom/internal/platform/validate"
	"github.com/warehouse21/stockroom/pkg/slug"
)

// # Service Layer

// IconIngester stores uploaded icon images and returns the stored file
// reference. Implemented by the media package.
type IconIngester interface {

	// StoreIcon normalises and saves icon bytes under a random name. It is
	// tolerant: undecodable input yields the generic icon reference and a
	// nil error.
	StoreIcon(context context.Context, data []byte) string

	// ReplaceIcon normalises and saves icon bytes under a slug-derived name,
	// overwriting any previous file. It is strict: undecodable input is an
	// error.
	ReplaceIcon(context context.Context, data []byte, slug string) (string, error)
}

// Service orchestrates catalog business rules: slug derivation, uniqueness,
// icon resolution, and the rename cascade.
type Service struct {
	repo     Repository
	resolver *IconResolver
	icons    IconIngester
	logger   *slog.Logger
}

// NewService constructs a catalog [Service].
func NewService(repo Repository, resolver *IconResolver, icons IconIngester, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		icons:    icons,
		logger:   logger,
	}
}

// # Categories

/*
CreateCategory registers a new top-level category.

Description: The slug is derived from the display name. Names that reduce to
an empty slug (punctuation only, unsupported scripts) are rejected rather
than silently colliding.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Category: Persisted entity
  - error: Validation or conflict errors
*/
func (service *Service) CreateCategory(context context.Context, name string) (*Category, error) {
	validator := (&validate.Validator{}).
		Required(FieldName, name).
		MaxLen(FieldName, name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	derived := slug.Make(name)
	if derived == "" {
		return nil, apperr.ValidationError(fmt.Sprintf("Name %q does not produce a usable identifier", name))
	}

	category := &Category{Name: name, Slug: derived}
	if err := service.repo.CreateCategory(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category created", "slug", derived, "id", category.ID)
	return category, nil
}

/*
ListCategories returns the full catalog hierarchy.

Parameters:
  - context: context.Context

Returns:
  - []*Category: Categories with subcategories attached
  - error: Retrieval errors
*/
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.repo.ListCategories(context)
}

/*
GetCategoryBySlug retrieves a single category by slug.

Parameters:
  - context: context.Context
  - categorySlug: string

Returns:
  - *Category: Hydrated entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetCategoryBySlug(context context.Context, categorySlug string) (*Category, error) {
	return service.repo.FindCategoryBySlug(context, categorySlug)
}

// # SubCategories

// SubCategoryInput carries the caller payload for subcategory creation.
type SubCategoryInput struct {
	Name       string
	CategoryID int

	// IconData holds raw uploaded image bytes; nil means no upload.
	IconData []byte
}

/*
CreateSubCategory registers a new subcategory under an existing category.

Description: Derives and uniqueness-checks the slug, verifies the parent
exists, and resolves the icon. Icon ingestion at creation is tolerant: a
broken upload falls back to the generic icon instead of failing the request.

Parameters:
  - context: context.Context
  - input: SubCategoryInput

Returns:
  - *SubCategory: Persisted entity
  - error: Validation, not-found, or conflict errors
*/
func (service *Service) CreateSubCategory(context context.Context, input SubCategoryInput) (*SubCategory, error) {
	validator := (&validate.Validator{}).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Positive(FieldCategoryID, input.CategoryID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	derived := slug.Make(input.Name)
	if derived == "" {
		return nil, apperr.ValidationError(fmt.Sprintf("Name %q does not produce a usable identifier", input.Name))
	}

	if _, err := service.repo.FindSubCategoryBySlug(context, derived); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Subcategory %q already exists", derived))
	}

	parent, err := service.repo.FindCategoryByID(context, input.CategoryID)
	if err != nil {
		return nil, apperr.NotFound("Category")
	}

	icon := constants.GenericIcon
	if len(input.IconData) > 0 {
		icon = service.icons.StoreIcon(context, input.IconData)
	}

	sub := &SubCategory{
		Name:       input.Name,
		Slug:       derived,
		IconPath:   icon,
		CategoryID: parent.ID,
	}
	if err := service.repo.CreateSubCategory(context, sub); err != nil {
		return nil, err
	}

	service.logger.Info("subcategory created", "slug", derived, "category", parent.Slug)
	return sub, nil
}

// SubCategoryUpdate carries the caller payload for a rename.
type SubCategoryUpdate struct {
	Name string

	// IconData holds replacement image bytes; nil means keep the current icon.
	IconData []byte
}

/*
RenameSubCategory renames a subcategory and cascades the change.

Description: The new slug is derived from the new name and re-checked for
global uniqueness when it differs from the old one. An icon replacement here
is strict: undecodable bytes abort the rename. The row update and the item
reference rewrite are applied atomically by the store.

Parameters:
  - context: context.Context
  - id: int
  - update: SubCategoryUpdate

Returns:
  - *SubCategory: Entity reflecting the new state
  - error: Validation, not-found, conflict, or media errors
*/
func (service *Service) RenameSubCategory(context context.Context, id int, update SubCategoryUpdate) (*SubCategory, error) {
	validator := (&validate.Validator{}).
		Required(FieldName, update.Name).
		MaxLen(FieldName, update.Name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.repo.FindSubCategoryByID(context, id)
	if err != nil {
		return nil, apperr.NotFound("Subcategory")
	}

	newSlug := slug.Make(update.Name)
	if newSlug == "" {
		return nil, apperr.ValidationError(fmt.Sprintf("Name %q does not produce a usable identifier", update.Name))
	}

	if newSlug != current.Slug {
		if _, err := service.repo.FindSubCategoryBySlug(context, newSlug); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Subcategory %q already exists", newSlug))
		}
	}

	rename := SubCategoryRename{
		ID:      current.ID,
		Name:    update.Name,
		OldSlug: current.Slug,
		NewSlug: newSlug,
	}
	if len(update.IconData) > 0 {
		icon, err := service.icons.ReplaceIcon(context, update.IconData, newSlug)
		if err != nil {
			return nil, apperr.Unprocessable("Uploaded icon could not be processed")
		}
		rename.IconPath = icon
		rename.IconChanged = true
	}

	if err := service.repo.RenameSubCategory(context, rename); err != nil {
		return nil, err
	}

	service.logger.Info("subcategory renamed",
		"id", current.ID, "old_slug", current.Slug, "new_slug", newSlug, "icon_changed", rename.IconChanged)

	updated := &SubCategory{
		ID:         current.ID,
		Name:       update.Name,
		Slug:       newSlug,
		IconPath:   current.IconPath,
		CategoryID: current.CategoryID,
	}
	if rename.IconChanged {
		updated.IconPath = rename.IconPath
	}
	return updated, nil
}

/*
DeleteSubCategory removes a subcategory without touching its items.

Description: Items keep their old slug reference and frozen icon. Dangling
references are an accepted state; item reads and future icon resolutions
degrade through the static table to the generic icon.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: ErrNotFound if missing
*/
func (service *Service) DeleteSubCategory(context context.Context, id int) error {
	sub, err := service.repo.FindSubCategoryByID(context, id)
	if err != nil {
		return apperr.NotFound("Subcategory")
	}

	if err := service.repo.DeleteSubCategory(context, id); err != nil {
		return err
	}

	service.logger.Info("subcategory deleted", "id", id, "slug", sub.Slug)
	return nil
}

// # Items

/*
CreateItem registers a new inventory item.

Description: Quantity values are stored as given. The icon reference is
frozen at creation: an explicit IconType wins, otherwise the resolver runs
over the supplied subcategory slug (dangling slugs included) and always
produces something displayable.

Parameters:
  - context: context.Context
  - input: ItemInput

Returns:
  - *Item: Persisted entity
  - error: Validation or not-found errors
*/
func (service *Service) CreateItem(context context.Context, input ItemInput) (*Item, error) {
	validator := (&validate.Validator{}).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Positive(FieldCategoryID, input.CategoryID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindCategoryByID(context, input.CategoryID); err != nil {
		return nil, apperr.NotFound("Category")
	}

	target := constants.DefaultTargetQuantity
	if input.TargetQuantity != nil {
		target = *input.TargetQuantity
	}

	icon := input.IconType
	if icon == "" {
		icon = service.resolver.Resolve(context, input.SubCategory)
	}

	item := &Item{
		Name:           input.Name,
		Quantity:       input.Quantity,
		TargetQuantity: target,
		IconType:       icon,
		ExpiryDate:     input.ExpiryDate,
		SubCategory:    input.SubCategory,
		CategoryID:     input.CategoryID,
	}
	if err := service.repo.CreateItem(context, item); err != nil {
		return nil, err
	}

	service.logger.Info("item created", "id", item.ID, "name", item.Name, "quantity", item.Quantity)
	return item, nil
}

/*
ListItems returns a paginated inventory slice and the total count.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Item: Items ordered by primary key
  - int: Total record count
  - error: Retrieval errors
*/
func (service *Service) ListItems(context context.Context, limit, offset int) ([]*Item, int, error) {
	return service.repo.ListItems(context, limit, offset)
}

/*
GetItem retrieves one item by primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Item: Hydrated entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetItem(context context.Context, id int) (*Item, error) {
	return service.repo.FindItemByID(context, id)
}

/*
UpdateItemQuantity overwrites an item's stock count and returns the updated
entity.

Parameters:
  - context: context.Context
  - id: int
  - quantity: int

Returns:
  - *Item: Entity reflecting the new quantity
  - error: ErrNotFound if missing
*/
func (service *Service) UpdateItemQuantity(context context.Context, id, quantity int) (*Item, error) {
	if err := service.repo.UpdateItemQuantity(context, id, quantity); err != nil {
		return nil, err
	}
	return service.repo.FindItemByID(context, id)
}

/*
DeleteItem removes an item permanently.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: ErrNotFound if missing
*/
func (service *Service) DeleteItem(context context.Context, id int) error {
	return service.repo.DeleteItem(context, id)
}
