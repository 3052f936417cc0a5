// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog

import "github.com/warehouse21/stockroom/internal/platform/constants"

// # Default Catalog Structure

// CategorySeed describes one category and its owned subcategories for the
// startup seeder. Slices keep seed order deterministic.
type CategorySeed struct {
	Slug string
	Name string
	Subs []SubCategorySeed
}

// SubCategorySeed describes one seeded subcategory.
type SubCategorySeed struct {
	Slug string
	Name string
}

// Defaults bundles the default hierarchy and the static icon table consulted
// by [IconResolver] when the database has no opinion.
type Defaults struct {
	Categories []CategorySeed
	Icons      map[string]string
}

// WarehouseDefaults returns the stock catalog shipped with the application:
// three root categories with Russian display names and a static slug-to-icon
// table for the standard subcategories.
func WarehouseDefaults() *Defaults {
	return &Defaults{
		Categories: []CategorySeed{
			{
				Slug: "food",
				Name: "Еда",
				Subs: []SubCategorySeed{
					{Slug: "canned_meat", Name: "Мясная консервация"},
					{Slug: "canned_fish", Name: "Рыбная консервация"},
					{Slug: "canned_veg", Name: "Овощная консервация"},
					{Slug: "instant", Name: "Быстрое приготовление"},
					{Slug: "snack", Name: "Снеки"},
					{Slug: "cereal", Name: "Крупы"},
				},
			},
			{
				Slug: "drinks",
				Name: "Напитки",
				Subs: []SubCategorySeed{
					{Slug: "water", Name: "Вода"},
					{Slug: "soda", Name: "Газировка"},
					{Slug: "energy", Name: "Энергетики"},
					{Slug: "alcohol", Name: "Алкоголь"},
				},
			},
			{
				Slug: constants.FallbackCategorySlug,
				Name: "Разное",
				Subs: []SubCategorySeed{
					{Slug: "general", Name: "Прочее"},
				},
			},
		},
		Icons: map[string]string{
			"canned_meat": "can_meat.png",
			"canned_fish": "can_fish.png",
			"canned_veg":  "jar.png",
			"instant":     "bowl.png",
			"snack":       "box.png",
			"cereal":      "box.png",
			"water":       "bottle_5l.png",
			"soda":        "bottle_2l.png",
			"energy":      "can_drink.png",
			"alcohol":     "bottle_glass.png",
			"general":     constants.GenericIcon,
		},
	}
}

// Icon returns the static icon for a subcategory slug, falling back to the
// generic pack icon.
func (defaults *Defaults) Icon(slug string) string {
	if icon, ok := defaults.Icons[slug]; ok {
		return icon
	}
	return constants.GenericIcon
}
