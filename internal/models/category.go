// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AppliesTo selects which content kinds a category applies to.
type AppliesTo string

const (
	AppliesToListing AppliesTo = "listing"
	AppliesToEvent   AppliesTo = "event"
	AppliesToBoth    AppliesTo = "both"
)

// Category represents a node in the hierarchical content taxonomy.
// Level is derived from the parent chain on save and never trusted
// from input.
type Category struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	NameEN        string     `json:"name_en"`
	NameMK        string     `json:"name_mk"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	DescriptionEN string     `json:"description_en"`
	DescriptionMK string     `json:"description_mk"`
	Icon          string     `json:"icon"`
	Color         *string    `json:"color,omitempty"`
	ParentID      *uuid.UUID `json:"parent_id"`
	Level         int        `json:"level"`
	SortOrder     int        `json:"sort_order"`
	IsActive      bool       `json:"is_active"`
	ShowInSearch  bool       `json:"show_in_search"`
	ShowInNav     bool       `json:"show_in_navigation"`
	Trending      bool       `json:"trending"`
	Featured      bool       `json:"featured"`
	AppliesTo     AppliesTo  `json:"applies_to"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Children  []Category `json:"children,omitempty"`
	ItemCount int        `json:"item_count"`
}

// IsRoot returns true for top-level categories.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// CoversListings returns true if listings may carry this category.
func (c *Category) CoversListings() bool {
	return c.AppliesTo == AppliesToListing || c.AppliesTo == AppliesToBoth
}

// CoversEvents returns true if events may carry this category.
func (c *Category) CoversEvents() bool {
	return c.AppliesTo == AppliesToEvent || c.AppliesTo == AppliesToBoth
}
