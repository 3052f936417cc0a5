// Copyright (c) 2026 Warehouse 21. All rights reserved.

/*
Package catalog owns the hierarchical inventory catalog: categories,
subcategories, and items, together with the rules that keep their references
coherent.

Architecture:

  - Entities: Category, SubCategory, Item.
  - Service: Orchestrates slug derivation, icon resolution, and invariants.
  - Repository: Abstracted interface backed by PostgreSQL.

The central correctness property is the rename cascade: renaming a
subcategory atomically rewrites the weak slug reference held by every item
that pointed at the old slug.
*/
package catalog

// Category is a top-level inventory grouping. Categories are created at
// seed time, rarely mutated, and never automatically deleted.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`

	// SubCategories contains the owned child records, populated by
	// hierarchical queries only.
	SubCategories []SubCategory `json:"subcategories,omitempty"`
}

// SubCategory is an owned child of a Category. Its slug is derived from the
// display name, globally unique, and re-verified on every rename.
type SubCategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	IconPath   string `json:"icon_path"`
	CategoryID int    `json:"category_id"`
}

// SubCategoryRename carries one atomic rename-cascade changeset to the store.
//
// The store must apply the subcategory row update and the item reference
// rewrite in a single transaction; partial application is a correctness
// violation.
type SubCategoryRename struct {
	ID      int
	Name    string
	OldSlug string
	NewSlug string

	// IconPath is the replacement icon reference. Only applied — and only
	// propagated to referencing items — when IconChanged is set.
	IconPath    string
	IconChanged bool
}

// Validation field identifiers shared by service methods.
const (
	FieldName       = "name"
	FieldSlug       = "slug"
	FieldCategoryID = "category_id"
)
