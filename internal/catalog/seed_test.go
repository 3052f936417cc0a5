// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehouse21/stockroom/internal/catalog"
)

/*
TestSeed_PopulatesEmptyCatalog verifies that seeding an empty store creates
the default hierarchy with static icons applied.
*/
func TestSeed_PopulatesEmptyCatalog(t *testing.T) {
	repo := newFakeRepository()
	defaults := catalog.WarehouseDefaults()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	require.NoError(t, catalog.Seed(context.Background(), repo, defaults, logger))

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)

	bySlug := map[string]*catalog.Category{}
	for _, category := range categories {
		bySlug[category.Slug] = category
	}
	require.Contains(t, bySlug, "food")
	require.Contains(t, bySlug, "drinks")
	require.Contains(t, bySlug, "misc")

	assert.Len(t, bySlug["food"].SubCategories, 6)
	assert.Len(t, bySlug["drinks"].SubCategories, 4)
	assert.Len(t, bySlug["misc"].SubCategories, 1)

	meat, err := repo.FindSubCategoryBySlug(context.Background(), "canned_meat")
	require.NoError(t, err)
	assert.Equal(t, "can_meat.png", meat.IconPath)
	assert.Equal(t, bySlug["food"].ID, meat.CategoryID)
}

/*
TestSeed_Idempotent verifies that seeding twice changes nothing.
*/
func TestSeed_Idempotent(t *testing.T) {
	repo := newFakeRepository()
	defaults := catalog.WarehouseDefaults()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	require.NoError(t, catalog.Seed(context.Background(), repo, defaults, logger))
	require.NoError(t, catalog.Seed(context.Background(), repo, defaults, logger))

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	total := 0
	for _, category := range categories {
		total += len(category.SubCategories)
	}
	assert.Equal(t, 11, total)
}

/*
TestSeed_CompletesPartialState verifies that categories present without
subcategories still receive the subcategory phase.
*/
func TestSeed_CompletesPartialState(t *testing.T) {
	repo := newFakeRepository()
	defaults := catalog.WarehouseDefaults()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	for _, seed := range defaults.Categories {
		require.NoError(t, repo.CreateCategory(context.Background(), &catalog.Category{
			Name: seed.Name, Slug: seed.Slug,
		}))
	}

	require.NoError(t, catalog.Seed(context.Background(), repo, defaults, logger))

	sub, err := repo.FindSubCategoryBySlug(context.Background(), "water")
	require.NoError(t, err)
	assert.Equal(t, "bottle_5l.png", sub.IconPath)
}
