// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog

import "context"

// # Catalog Data Access

// Repository defines the data access contract for the catalog hierarchy.
type Repository interface {

	/*
		CreateCategory persists a new top-level category.

		Parameters:
		  - context: context.Context
		  - category: *Category (ID populated on success)

		Returns:
		  - error: ErrConflict on duplicate name or slug
	*/
	CreateCategory(context context.Context, category *Category) error

	/*
		FindCategoryByID retrieves a category by its primary key.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Category: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindCategoryByID(context context.Context, id int) (*Category, error)

	/*
		FindCategoryBySlug retrieves a category by its slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Category: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindCategoryBySlug(context context.Context, slug string) (*Category, error)

	/*
		ListCategories returns every category with its owned subcategories
		attached, ordered by primary key for stable output.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Category: Full hierarchy
		  - error: Database retrieval failures
	*/
	ListCategories(context context.Context) ([]*Category, error)

	/*
		HasCategories reports whether any category rows exist. Used by the
		seeder to keep startup idempotent.

		Parameters:
		  - context: context.Context

		Returns:
		  - bool: True when at least one category exists
		  - error: Database retrieval failures
	*/
	HasCategories(context context.Context) (bool, error)

	/*
		CreateSubCategory persists a new subcategory under its parent.

		Parameters:
		  - context: context.Context
		  - sub: *SubCategory (ID populated on success)

		Returns:
		  - error: ErrConflict on duplicate slug
	*/
	CreateSubCategory(context context.Context, sub *SubCategory) error

	/*
		FindSubCategoryByID retrieves a subcategory by its primary key.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *SubCategory: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindSubCategoryByID(context context.Context, id int) (*SubCategory, error)

	/*
		FindSubCategoryBySlug retrieves a subcategory by its globally unique
		slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *SubCategory: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindSubCategoryBySlug(context context.Context, slug string) (*SubCategory, error)

	/*
		RenameSubCategory applies a rename changeset atomically: the
		subcategory row update and the rewrite of every item holding the old
		slug reference happen in one transaction.

		Parameters:
		  - context: context.Context
		  - rename: SubCategoryRename

		Returns:
		  - error: ErrConflict on slug collision, transactional failures
	*/
	RenameSubCategory(context context.Context, rename SubCategoryRename) error

	/*
		DeleteSubCategory removes a subcategory row. Items referencing its
		slug are deliberately left untouched.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: ErrNotFound if missing
	*/
	DeleteSubCategory(context context.Context, id int) error

	/*
		HasSubCategories reports whether any subcategory rows exist.

		Parameters:
		  - context: context.Context

		Returns:
		  - bool: True when at least one subcategory exists
		  - error: Database retrieval failures
	*/
	HasSubCategories(context context.Context) (bool, error)

	/*
		CreateItem persists a new inventory item.

		Parameters:
		  - context: context.Context
		  - item: *Item (ID and CreatedAt populated on success)

		Returns:
		  - error: Persistence failures
	*/
	CreateItem(context context.Context, item *Item) error

	/*
		FindItemByID retrieves an item by its primary key.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Item: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindItemByID(context context.Context, id int) (*Item, error)

	/*
		ListItems returns a paginated slice of items and the total count.

		Parameters:
		  - context: context.Context
		  - limit, offset: int

		Returns:
		  - []*Item: Slice of items ordered by primary key
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	ListItems(context context.Context, limit, offset int) ([]*Item, int, error)

	/*
		UpdateItemQuantity overwrites an item's stock count. The value is
		stored as given; no clamping is applied.

		Parameters:
		  - context: context.Context
		  - id: int
		  - quantity: int

		Returns:
		  - error: ErrNotFound if missing
	*/
	UpdateItemQuantity(context context.Context, id, quantity int) error

	/*
		DeleteItem removes an item row permanently.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: ErrNotFound if missing
	*/
	DeleteItem(context context.Context, id int) error
}
