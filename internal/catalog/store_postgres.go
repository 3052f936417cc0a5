// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warehouse21/stockroom/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalog store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Categories

/*
CreateCategory persists a new category row.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: ErrConflict on duplicate name or slug
*/
func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	const query = `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id
	`
	err := repository.db.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		return dberr.Wrap(err, "create_category")
	}
	return nil
}

/*
FindCategoryByID retrieves a category row by its primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Category: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindCategoryByID(context context.Context, id int) (*Category, error) {
	const query = `SELECT id, name, slug FROM categories WHERE id = $1`

	category := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "find_category_by_id")
	}
	return category, nil
}

/*
FindCategoryBySlug retrieves a category row by its slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Category: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindCategoryBySlug(context context.Context, slug string) (*Category, error) {
	const query = `SELECT id, name, slug FROM categories WHERE slug = $1`

	category := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "find_category_by_slug")
	}
	return category, nil
}

/*
ListCategories returns the full hierarchy in two queries: all categories,
then all subcategories grouped onto their parents in memory.

Parameters:
  - context: context.Context

Returns:
  - []*Category: Categories with SubCategories populated
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListCategories(context context.Context) ([]*Category, error) {
	rows, err := repository.db.Query(context, `SELECT id, name, slug FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	index := map[int]*Category{}
	for rows.Next() {
		category := &Category{SubCategories: []SubCategory{}}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
		index[category.ID] = category
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_categories")
	}
	rows.Close()

	subRows, err := repository.db.Query(context, `
		SELECT id, name, slug, icon_path, category_id
		FROM subcategories
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_subcategories")
	}
	defer subRows.Close()

	for subRows.Next() {
		sub := SubCategory{}
		if err := subRows.Scan(&sub.ID, &sub.Name, &sub.Slug, &sub.IconPath, &sub.CategoryID); err != nil {
			return nil, dberr.Wrap(err, "scan_subcategory")
		}
		if parent, ok := index[sub.CategoryID]; ok {
			parent.SubCategories = append(parent.SubCategories, sub)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_subcategories")
	}

	return categories, nil
}

/*
HasCategories reports whether any category rows exist.

Parameters:
  - context: context.Context

Returns:
  - bool: True when the table is non-empty
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) HasCategories(context context.Context) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM categories)`).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "has_categories")
	}
	return exists, nil
}

// # SubCategories

/*
CreateSubCategory persists a new subcategory row.

Parameters:
  - context: context.Context
  - sub: *SubCategory

Returns:
  - error: ErrConflict on duplicate slug
*/
func (repository *PostgresRepository) CreateSubCategory(context context.Context, sub *SubCategory) error {
	const query = `
		INSERT INTO subcategories (name, slug, icon_path, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := repository.db.QueryRow(context, query, sub.Name, sub.Slug, sub.IconPath, sub.CategoryID).Scan(&sub.ID)
	if err != nil {
		return dberr.Wrap(err, "create_subcategory")
	}
	return nil
}

/*
FindSubCategoryByID retrieves a subcategory row by its primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *SubCategory: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindSubCategoryByID(context context.Context, id int) (*SubCategory, error) {
	const query = `
		SELECT id, name, slug, icon_path, category_id
		FROM subcategories
		WHERE id = $1
	`
	sub := &SubCategory{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&sub.ID, &sub.Name, &sub.Slug, &sub.IconPath, &sub.CategoryID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_subcategory_by_id")
	}
	return sub, nil
}

/*
FindSubCategoryBySlug retrieves a subcategory row by its slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *SubCategory: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindSubCategoryBySlug(context context.Context, slug string) (*SubCategory, error) {
	const query = `
		SELECT id, name, slug, icon_path, category_id
		FROM subcategories
		WHERE slug = $1
	`
	sub := &SubCategory{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&sub.ID, &sub.Name, &sub.Slug, &sub.IconPath, &sub.CategoryID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_subcategory_by_slug")
	}
	return sub, nil
}

/*
RenameSubCategory applies the rename cascade inside one transaction.

Description: Step 1 rewrites the subcategory row (name, slug, optionally
icon). Step 2 repoints every item whose weak reference still holds the old
slug; when the icon changed those items also receive the new icon reference.
Either both steps commit or neither does.

Parameters:
  - context: context.Context
  - rename: SubCategoryRename

Returns:
  - error: ErrConflict on slug collision, transactional failures
*/
func (repository *PostgresRepository) RenameSubCategory(context context.Context, rename SubCategoryRename) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_rename_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Rewrite the subcategory row
	if rename.IconChanged {
		const query = `
			UPDATE subcategories
			SET name = $1, slug = $2, icon_path = $3
			WHERE id = $4
		`
		_, err = transaction.Exec(context, query, rename.Name, rename.NewSlug, rename.IconPath, rename.ID)
	} else {
		const query = `
			UPDATE subcategories
			SET name = $1, slug = $2
			WHERE id = $3
		`
		_, err = transaction.Exec(context, query, rename.Name, rename.NewSlug, rename.ID)
	}
	if err != nil {
		return dberr.Wrap(err, "update_subcategory")
	}

	// Step 2: Repoint dependent item references
	if rename.IconChanged {
		const query = `
			UPDATE items
			SET subcategory = $1, icon_type = $2
			WHERE subcategory = $3
		`
		_, err = transaction.Exec(context, query, rename.NewSlug, rename.IconPath, rename.OldSlug)
	} else {
		const query = `
			UPDATE items
			SET subcategory = $1
			WHERE subcategory = $2
		`
		_, err = transaction.Exec(context, query, rename.NewSlug, rename.OldSlug)
	}
	if err != nil {
		return dberr.Wrap(err, "cascade_item_references")
	}

	// Persist Atomic Changeset
	return transaction.Commit(context)
}

/*
DeleteSubCategory removes a subcategory row. Item references are left as
they are; dangling slugs are tolerated by the read paths.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: ErrNotFound when no row was removed
*/
func (repository *PostgresRepository) DeleteSubCategory(context context.Context, id int) error {
	tag, err := repository.db.Exec(context, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_subcategory")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
HasSubCategories reports whether any subcategory rows exist.

Parameters:
  - context: context.Context

Returns:
  - bool: True when the table is non-empty
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) HasSubCategories(context context.Context) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM subcategories)`).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "has_subcategories")
	}
	return exists, nil
}

// # Items

/*
CreateItem persists a new item row.

Parameters:
  - context: context.Context
  - item: *Item

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) CreateItem(context context.Context, item *Item) error {
	const query = `
		INSERT INTO items (name, quantity, target_quantity, icon_type, expiry_date, subcategory, category_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING id, created_at
	`
	err := repository.db.QueryRow(context, query,
		item.Name, item.Quantity, item.TargetQuantity, item.IconType,
		item.ExpiryDate, item.SubCategory, item.CategoryID,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_item")
	}
	return nil
}

/*
FindItemByID retrieves an item row by its primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Item: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindItemByID(context context.Context, id int) (*Item, error) {
	const query = `
		SELECT id, name, quantity, target_quantity, icon_type, expiry_date,
			COALESCE(subcategory, ''), category_id, created_at
		FROM items
		WHERE id = $1
	`
	item := &Item{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&item.ID, &item.Name, &item.Quantity, &item.TargetQuantity, &item.IconType,
		&item.ExpiryDate, &item.SubCategory, &item.CategoryID, &item.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_item_by_id")
	}
	return item, nil
}

/*
ListItems returns a paginated slice of items and the total count.

Description: Uses COUNT(*) OVER() for total metadata in a single round trip.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Item: Slice ordered by primary key
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListItems(context context.Context, limit, offset int) ([]*Item, int, error) {
	const query = `
		SELECT id, name, quantity, target_quantity, icon_type, expiry_date,
			COALESCE(subcategory, ''), category_id, created_at,
			COUNT(*) OVER() as total
		FROM items
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_items")
	}
	defer rows.Close()

	var items []*Item
	var total int
	for rows.Next() {
		item := &Item{}
		err := rows.Scan(
			&item.ID, &item.Name, &item.Quantity, &item.TargetQuantity, &item.IconType,
			&item.ExpiryDate, &item.SubCategory, &item.CategoryID, &item.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_items")
	}

	return items, total, nil
}

/*
UpdateItemQuantity overwrites an item's stock count.

Parameters:
  - context: context.Context
  - id: int
  - quantity: int

Returns:
  - error: ErrNotFound when no row was updated
*/
func (repository *PostgresRepository) UpdateItemQuantity(context context.Context, id, quantity int) error {
	tag, err := repository.db.Exec(context, `UPDATE items SET quantity = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return dberr.Wrap(err, "update_item_quantity")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
DeleteItem removes an item row permanently.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: ErrNotFound when no row was removed
*/
func (repository *PostgresRepository) DeleteItem(context context.Context, id int) error {
	tag, err := repository.db.Exec(context, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_item")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
