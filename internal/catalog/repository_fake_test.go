// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog_test

import (
	"context"
	"sort"
	"time"

	"github.com/warehouse21/stockroom/internal/catalog"
	"github.com/warehouse21/stockroom/internal/platform/apperr"
	"github.com/warehouse21/stockroom/internal/platform/dberr"
)

// fakeRepository is an in-memory [catalog.Repository] honouring the same
// error contracts as the PostgreSQL store, including the atomic rename
// cascade onto item references.
type fakeRepository struct {
	categories    map[int]*catalog.Category
	subcategories map[int]*catalog.SubCategory
	items         map[int]*catalog.Item
	nextID        int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		categories:    map[int]*catalog.Category{},
		subcategories: map[int]*catalog.SubCategory{},
		items:         map[int]*catalog.Item{},
		nextID:        1,
	}
}

func (fake *fakeRepository) allocateID() int {
	id := fake.nextID
	fake.nextID++
	return id
}

func (fake *fakeRepository) CreateCategory(_ context.Context, category *catalog.Category) error {
	for _, existing := range fake.categories {
		if existing.Slug == category.Slug || existing.Name == category.Name {
			return apperr.Conflict("A record with this identifier already exists")
		}
	}
	category.ID = fake.allocateID()
	stored := *category
	fake.categories[category.ID] = &stored
	return nil
}

func (fake *fakeRepository) FindCategoryByID(_ context.Context, id int) (*catalog.Category, error) {
	if category, ok := fake.categories[id]; ok {
		clone := *category
		return &clone, nil
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeRepository) FindCategoryBySlug(_ context.Context, slug string) (*catalog.Category, error) {
	for _, category := range fake.categories {
		if category.Slug == slug {
			clone := *category
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeRepository) ListCategories(_ context.Context) ([]*catalog.Category, error) {
	var result []*catalog.Category
	for _, category := range fake.categories {
		clone := *category
		clone.SubCategories = []catalog.SubCategory{}
		for _, sub := range fake.subcategories {
			if sub.CategoryID == category.ID {
				clone.SubCategories = append(clone.SubCategories, *sub)
			}
		}
		sort.Slice(clone.SubCategories, func(i, j int) bool {
			return clone.SubCategories[i].ID < clone.SubCategories[j].ID
		})
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (fake *fakeRepository) HasCategories(_ context.Context) (bool, error) {
	return len(fake.categories) > 0, nil
}

func (fake *fakeRepository) CreateSubCategory(_ context.Context, sub *catalog.SubCategory) error {
	for _, existing := range fake.subcategories {
		if existing.Slug == sub.Slug {
			return apperr.Conflict("A record with this identifier already exists")
		}
	}
	sub.ID = fake.allocateID()
	stored := *sub
	fake.subcategories[sub.ID] = &stored
	return nil
}

func (fake *fakeRepository) FindSubCategoryByID(_ context.Context, id int) (*catalog.SubCategory, error) {
	if sub, ok := fake.subcategories[id]; ok {
		clone := *sub
		return &clone, nil
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeRepository) FindSubCategoryBySlug(_ context.Context, slug string) (*catalog.SubCategory, error) {
	for _, sub := range fake.subcategories {
		if sub.Slug == slug {
			clone := *sub
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeRepository) RenameSubCategory(_ context.Context, rename catalog.SubCategoryRename) error {
	sub, ok := fake.subcategories[rename.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	for _, existing := range fake.subcategories {
		if existing.ID != rename.ID && existing.Slug == rename.NewSlug {
			return apperr.Conflict("A record with this identifier already exists")
		}
	}

	sub.Name = rename.Name
	sub.Slug = rename.NewSlug
	if rename.IconChanged {
		sub.IconPath = rename.IconPath
	}

	for _, item := range fake.items {
		if item.SubCategory == rename.OldSlug {
			item.SubCategory = rename.NewSlug
			if rename.IconChanged {
				item.IconType = rename.IconPath
			}
		}
	}
	return nil
}

func (fake *fakeRepository) DeleteSubCategory(_ context.Context, id int) error {
	if _, ok := fake.subcategories[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(fake.subcategories, id)
	return nil
}

func (fake *fakeRepository) HasSubCategories(_ context.Context) (bool, error) {
	return len(fake.subcategories) > 0, nil
}

func (fake *fakeRepository) CreateItem(_ context.Context, item *catalog.Item) error {
	item.ID = fake.allocateID()
	item.CreatedAt = time.Now()
	stored := *item
	fake.items[item.ID] = &stored
	return nil
}

func (fake *fakeRepository) FindItemByID(_ context.Context, id int) (*catalog.Item, error) {
	if item, ok := fake.items[id]; ok {
		clone := *item
		return &clone, nil
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeRepository) ListItems(_ context.Context, limit, offset int) ([]*catalog.Item, int, error) {
	var all []*catalog.Item
	for _, item := range fake.items {
		clone := *item
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (fake *fakeRepository) UpdateItemQuantity(_ context.Context, id, quantity int) error {
	item, ok := fake.items[id]
	if !ok {
		return dberr.ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

func (fake *fakeRepository) DeleteItem(_ context.Context, id int) error {
	if _, ok := fake.items[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(fake.items, id)
	return nil
}

// fakeIngester is a scripted [catalog.IconIngester].
type fakeIngester struct {
	storeResult   string
	replaceResult string
	replaceErr    error
}

func (fake *fakeIngester) StoreIcon(_ context.Context, _ []byte) string {
	return fake.storeResult
}

func (fake *fakeIngester) ReplaceIcon(_ context.Context, _ []byte, _ string) (string, error) {
	return fake.replaceResult, fake.replaceErr
}
