// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog

import (
	"context"

	"github.com/warehouse21/stockroom/internal/platform/constants"
)

// # Icon Resolution

// SubCategoryFinder is the narrow read surface the resolver needs.
type SubCategoryFinder interface {
	FindSubCategoryBySlug(context context.Context, slug string) (*SubCategory, error)
}

// IconResolver maps a subcategory slug to an icon reference using a fixed
// precedence chain: live database record, static default table, generic
// fallback.
//
// Resolution runs once, at item creation time. The result is frozen onto the
// item; later catalog changes never re-run it.
type IconResolver struct {
	finder   SubCategoryFinder
	defaults *Defaults
}

// NewIconResolver constructs an [IconResolver].
func NewIconResolver(finder SubCategoryFinder, defaults *Defaults) *IconResolver {
	return &IconResolver{finder: finder, defaults: defaults}
}

/*
Resolve returns the icon reference for a subcategory slug.

Description: An unknown slug is not an error; every input resolves to some
icon. Database lookups that fail for any reason fall through to the static
table, so a degraded database still yields sensible icons.

Parameters:
  - context: context.Context
  - slug: string (may be empty or dangling)

Returns:
  - string: Icon file reference, never empty
*/
func (resolver *IconResolver) Resolve(context context.Context, slug string) string {
	if slug == "" {
		return constants.GenericIcon
	}

	// Tier 1: Live catalog record
	if sub, err := resolver.finder.FindSubCategoryBySlug(context, slug); err == nil && sub.IconPath != "" {
		return sub.IconPath
	}

	// Tier 2: Static default table
	if icon, ok := resolver.defaults.Icons[slug]; ok {
		return icon
	}

	// Tier 3: Generic fallback
	return constants.GenericIcon
}
