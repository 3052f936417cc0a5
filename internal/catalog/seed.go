// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"log/slog"
)

// # Startup Seeding

/*
Seed populates an empty catalog with the default hierarchy.

Description: Idempotent by table-level presence checks, mirroring the two
phases of the default structure. Categories are inserted only when the
categories table is empty; subcategories only when the subcategories table is
empty. A partially seeded database (categories present, subcategories absent)
therefore completes on the next startup.

Parameters:
  - context: context.Context
  - repo: Repository
  - defaults: *Defaults
  - logger: *slog.Logger

Returns:
  - error: Database failures during seeding
*/
func Seed(context context.Context, repo Repository, defaults *Defaults, logger *slog.Logger) error {

	// Phase 1: Root categories
	hasCategories, err := repo.HasCategories(context)
	if err != nil {
		return fmt.Errorf("checking categories: %w", err)
	}
	if !hasCategories {
		for _, seed := range defaults.Categories {
			category := &Category{Name: seed.Name, Slug: seed.Slug}
			if err := repo.CreateCategory(context, category); err != nil {
				return fmt.Errorf("seeding category %q: %w", seed.Slug, err)
			}
		}
		logger.Info("seeded default categories", "count", len(defaults.Categories))
	}

	// Phase 2: Subcategories
	hasSubCategories, err := repo.HasSubCategories(context)
	if err != nil {
		return fmt.Errorf("checking subcategories: %w", err)
	}
	if hasSubCategories {
		return nil
	}

	seeded := 0
	for _, seed := range defaults.Categories {
		parent, err := repo.FindCategoryBySlug(context, seed.Slug)
		if err != nil {
			// Operator-curated categories may diverge from the defaults;
			// skip entries with no matching parent.
			logger.Warn("seed parent category missing", "slug", seed.Slug)
			continue
		}
		for _, subSeed := range seed.Subs {
			sub := &SubCategory{
				Name:       subSeed.Name,
				Slug:       subSeed.Slug,
				IconPath:   defaults.Icon(subSeed.Slug),
				CategoryID: parent.ID,
			}
			if err := repo.CreateSubCategory(context, sub); err != nil {
				return fmt.Errorf("seeding subcategory %q: %w", subSeed.Slug, err)
			}
			seeded++
		}
	}
	if seeded > 0 {
		logger.Info("seeded default subcategories", "count", seeded)
	}

	return nil
}
