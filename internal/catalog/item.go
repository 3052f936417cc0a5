// Copyright (c) 2026 Warehouse 21. All rights reserved.

package catalog

import "time"

// Item is a stocked inventory record. It holds a strong foreign key to its
// Category and, optionally, a weak textual reference to a subcategory slug.
//
// The weak reference is deliberate: deleting the referenced subcategory
// leaves the item untouched, carrying a dangling slug. IconType is a frozen
// snapshot resolved once at creation time and never re-derived afterwards,
// so renames and deletions downstream cannot change it.
type Item struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Quantity       int        `json:"quantity"`
	TargetQuantity int        `json:"target_quantity"`
	IconType       string     `json:"icon_type"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	SubCategory    string     `json:"subcategory,omitempty"`
	CategoryID     int        `json:"category_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ItemInput is the caller-facing payload for item creation.
//
// Quantity and TargetQuantity are stored as given; the catalog does not
// clamp or reject negative stock counts, that judgement belongs to the
// caller.
type ItemInput struct {
	Name           string     `json:"name"`
	Quantity       int        `json:"quantity"`
	TargetQuantity *int       `json:"target_quantity,omitempty"`
	IconType       string     `json:"icon_type,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	SubCategory    string     `json:"subcategory,omitempty"`
	CategoryID     int        `json:"category_id"`
}
