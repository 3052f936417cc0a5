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
	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/constants"
)

func newTestService(t *testing.T) (*catalog.Service, *fakeRepository, *fakeIngester) {
	t.Helper()
	repo := newFakeRepository()
	ingester := &fakeIngester{storeResult: "uploaded.png", replaceResult: "sub_replaced.png"}
	resolver := catalog.NewIconResolver(repo, catalog.WarehouseDefaults())
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return catalog.NewService(repo, resolver, ingester, logger), repo, ingester
}

func seedFood(t *testing.T, service *catalog.Service) *catalog.Category {
	t.Helper()
	category, err := service.CreateCategory(context.Background(), "Еда")
	require.NoError(t, err)
	return category
}

/*
TestCreateCategory_DerivesSlug verifies that Cyrillic display names produce
transliterated slugs.
*/
func TestCreateCategory_DerivesSlug(t *testing.T) {
	service, _, _ := newTestService(t)

	category, err := service.CreateCategory(context.Background(), "Напитки")
	require.NoError(t, err)
	assert.Equal(t, "napitki", category.Slug)
	assert.Equal(t, "Напитки", category.Name)
	assert.NotZero(t, category.ID)
}

/*
TestCreateCategory_RejectsUnsluggableName verifies that names reducing to an
empty slug fail validation instead of colliding silently.
*/
func TestCreateCategory_RejectsUnsluggableName(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreateCategory(context.Background(), "!!! ---")
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestCreateSubCategory verifies slug derivation, parent checks, and default
icon assignment.
*/
func TestCreateSubCategory(t *testing.T) {
	service, _, _ := newTestService(t)
	parent := seedFood(t, service)

	sub, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name:       "Мясная консервация",
		CategoryID: parent.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "myasnaya_konservatsiya", sub.Slug)
	assert.Equal(t, parent.ID, sub.CategoryID)

	// No upload: generic icon
	assert.Equal(t, constants.GenericIcon, sub.IconPath)
}

/*
TestCreateSubCategory_UploadedIcon verifies that uploaded bytes take the
tolerant ingestion path at creation time.
*/
func TestCreateSubCategory_UploadedIcon(t *testing.T) {
	service, _, ingester := newTestService(t)
	parent := seedFood(t, service)
	ingester.storeResult = "a1b2c3.png"

	sub, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name:       "Снеки",
		CategoryID: parent.ID,
		IconData:   []byte("fake-image-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3.png", sub.IconPath)
}

/*
TestCreateSubCategory_DuplicateSlug verifies that two display names reducing
to the same slug conflict, regardless of parent category.
*/
func TestCreateSubCategory_DuplicateSlug(t *testing.T) {
	service, _, _ := newTestService(t)
	food := seedFood(t, service)
	drinks, err := service.CreateCategory(context.Background(), "Напитки")
	require.NoError(t, err)

	_, err = service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name:       "Вода",
		CategoryID: food.ID,
	})
	require.NoError(t, err)

	// Same derived slug under a different parent still collides.
	_, err = service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name:       "вода",
		CategoryID: drinks.ID,
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

/*
TestCreateSubCategory_MissingParent verifies the not-found contract for an
unknown category id.
*/
func TestCreateSubCategory_MissingParent(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name:       "Вода",
		CategoryID: 42,
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestRenameSubCategory_CascadesItemReferences verifies the core atomicity
contract: renaming repoints every item holding the old slug and leaves other
items untouched.
*/
func TestRenameSubCategory_CascadesItemReferences(t *testing.T) {
	service, repo, _ := newTestService(t)
	parent := seedFood(t, service)

	sub, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name:       "Снеки",
		CategoryID: parent.ID,
	})
	require.NoError(t, err)

	linked, err := service.CreateItem(context.Background(), catalog.ItemInput{
		Name:        "Чипсы",
		Quantity:    3,
		SubCategory: sub.Slug,
		CategoryID:  parent.ID,
	})
	require.NoError(t, err)

	unrelated, err := service.CreateItem(context.Background(), catalog.ItemInput{
		Name:        "Вода 5л",
		Quantity:    1,
		SubCategory: "water",
		CategoryID:  parent.ID,
	})
	require.NoError(t, err)

	renamed, err := service.RenameSubCategory(context.Background(), sub.ID, catalog.SubCategoryUpdate{
		Name: "Сухие пайки",
	})
	require.NoError(t, err)
	assert.Equal(t, "suhie_payki", renamed.Slug)

	// Linked item follows the rename.
	got, err := repo.FindItemByID(context.Background(), linked.ID)
	require.NoError(t, err)
	assert.Equal(t, "suhie_payki", got.SubCategory)

	// Icon unchanged: no replacement was uploaded.
	assert.Equal(t, linked.IconType, got.IconType)

	// Unrelated references stay put.
	got, err = repo.FindItemByID(context.Background(), unrelated.ID)
	require.NoError(t, err)
	assert.Equal(t, "water", got.SubCategory)
}

/*
TestRenameSubCategory_IconReplacement verifies that a strict icon replacement
propagates onto cascaded items, and that a broken upload aborts the rename.
*/
func TestRenameSubCategory_IconReplacement(t *testing.T) {
	service, repo, ingester := newTestService(t)
	parent := seedFood(t, service)

	sub, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name:       "Снеки",
		CategoryID: parent.ID,
	})
	require.NoError(t, err)

	item, err := service.CreateItem(context.Background(), catalog.ItemInput{
		Name:        "Чипсы",
		SubCategory: sub.Slug,
		CategoryID:  parent.ID,
	})
	require.NoError(t, err)

	ingester.replaceResult = "sub_pajki.png"
	renamed, err := service.RenameSubCategory(context.Background(), sub.ID, catalog.SubCategoryUpdate{
		Name:     "Пайки",
		IconData: []byte("new-icon"),
	})
	require.NoError(t, err)
	assert.Equal(t, "sub_pajki.png", renamed.IconPath)

	got, err := repo.FindItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "sub_pajki.png", got.IconType)

	// Strict path: a broken upload must abort.
	ingester.replaceErr = assert.AnError
	_, err = service.RenameSubCategory(context.Background(), sub.ID, catalog.SubCategoryUpdate{
		Name:     "Пайки 2",
		IconData: []byte("broken"),
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNPROCESSABLE", appError.Code)
}

/*
TestRenameSubCategory_SlugCollision verifies that renaming into an occupied
slug conflicts, while renaming to the same slug (display-name touch-up) does
not.
*/
func TestRenameSubCategory_SlugCollision(t *testing.T) {
	service, _, _ := newTestService(t)
	parent := seedFood(t, service)

	first, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name: "Вода", CategoryID: parent.ID,
	})
	require.NoError(t, err)
	second, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name: "Снеки", CategoryID: parent.ID,
	})
	require.NoError(t, err)

	_, err = service.RenameSubCategory(context.Background(), second.ID, catalog.SubCategoryUpdate{
		Name: "вода",
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	// Identity rename is allowed.
	renamed, err := service.RenameSubCategory(context.Background(), first.ID, catalog.SubCategoryUpdate{
		Name: "ВОДА",
	})
	require.NoError(t, err)
	assert.Equal(t, "voda", renamed.Slug)
	assert.Equal(t, "ВОДА", renamed.Name)
}

/*
TestDeleteSubCategory_LeavesOrphans verifies the orphan-tolerant delete:
items keep their dangling slug and frozen icon.
*/
func TestDeleteSubCategory_LeavesOrphans(t *testing.T) {
	service, repo, _ := newTestService(t)
	parent := seedFood(t, service)

	sub, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name: "Снеки", CategoryID: parent.ID,
	})
	require.NoError(t, err)

	item, err := service.CreateItem(context.Background(), catalog.ItemInput{
		Name:        "Чипсы",
		SubCategory: sub.Slug,
		CategoryID:  parent.ID,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSubCategory(context.Background(), sub.ID))

	// The item survives with its reference and icon intact.
	got, err := repo.FindItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.Slug, got.SubCategory)
	assert.Equal(t, item.IconType, got.IconType)

	// Deleting again reports not found.
	err = service.DeleteSubCategory(context.Background(), sub.ID)
	require.Error(t, err)
}

/*
TestCreateItem_Defaults verifies target quantity defaulting and icon
freezing.
*/
func TestCreateItem_Defaults(t *testing.T) {
	service, _, _ := newTestService(t)
	parent := seedFood(t, service)

	item, err := service.CreateItem(context.Background(), catalog.ItemInput{
		Name:       "Тушёнка",
		Quantity:   5,
		CategoryID: parent.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultTargetQuantity, item.TargetQuantity)
	assert.Equal(t, constants.GenericIcon, item.IconType)

	zero := 0
	item, err = service.CreateItem(context.Background(), catalog.ItemInput{
		Name:           "Вода",
		TargetQuantity: &zero,
		CategoryID:     parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, item.TargetQuantity)
}

/*
TestCreateItem_IconPrecedence verifies the resolver chain at item creation:
live record, then static table, then generic fallback, with an explicit
IconType short-circuiting everything.
*/
func TestCreateItem_IconPrecedence(t *testing.T) {
	service, _, ingester := newTestService(t)
	parent := seedFood(t, service)

	// Tier 1: live subcategory record wins over the static table.
	ingester.storeResult = "custom_water.png"
	_, err := service.CreateSubCategory(context.Background(), catalog.SubCategoryInput{
		Name:       "Вода",
		CategoryID: parent.ID,
		IconData:   []byte("img"),
	})
	require.NoError(t, err)

	item, err := service.CreateItem(context.Background(), catalog.ItemInput{
		Name: "Вода 5л", SubCategory: "voda", CategoryID: parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "custom_water.png", item.IconType)

	// Tier 2: dangling slug known to the static table.
	item, err = service.CreateItem(context.Background(), catalog.ItemInput{
		Name: "Тушёнка", SubCategory: "canned_meat", CategoryID: parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "can_meat.png", item.IconType)

	// Tier 3: unknown slug falls back to generic.
	item, err = service.CreateItem(context.Background(), catalog.ItemInput{
		Name: "Нечто", SubCategory: "mystery", CategoryID: parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.GenericIcon, item.IconType)

	// Explicit icon short-circuits resolution.
	item, err = service.CreateItem(context.Background(), catalog.ItemInput{
		Name: "Банка", IconType: "jar.png", SubCategory: "mystery", CategoryID: parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "jar.png", item.IconType)
}

/*
TestCreateItem_NegativeQuantityStored verifies that stock counts are stored
as given without clamping.
*/
func TestCreateItem_NegativeQuantityStored(t *testing.T) {
	service, _, _ := newTestService(t)
	parent := seedFood(t, service)

	item, err := service.CreateItem(context.Background(), catalog.ItemInput{
		Name:       "Недостача",
		Quantity:   -3,
		CategoryID: parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, -3, item.Quantity)

	updated, err := service.UpdateItemQuantity(context.Background(), item.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, -10, updated.Quantity)
}

/*
TestListItems_Pagination verifies slice boundaries and total count.
*/
func TestListItems_Pagination(t *testing.T) {
	service, _, _ := newTestService(t)
	parent := seedFood(t, service)

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		_, err := service.CreateItem(context.Background(), catalog.ItemInput{
			Name: name, CategoryID: parent.ID,
		})
		require.NoError(t, err)
	}

	items, total, err := service.ListItems(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].Name)
	assert.Equal(t, "d", items[1].Name)
}
