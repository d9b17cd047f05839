// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItemType is the closed set of content kinds a wishlist entry
// may reference. The reference is a tagged (type, id) pair rather than a
// foreign key, since the four tables share no common parent.
type WishlistItemType string

const (
	WishlistItemListing   WishlistItemType = "listing"
	WishlistItemEvent     WishlistItemType = "event"
	WishlistItemPromotion WishlistItemType = "promotion"
	WishlistItemBlog      WishlistItemType = "blog"
)

// ValidWishlistItemType reports whether t names a known content kind.
func ValidWishlistItemType(t WishlistItemType) bool {
	switch t {
	case WishlistItemListing, WishlistItemEvent, WishlistItemPromotion, WishlistItemBlog:
		return true
	}
	return false
}

// WishlistItem is one saved entry. Unique per (user, item_type, item_id).
type WishlistItem struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	ItemType  WishlistItemType `json:"item_type"`
	ItemID    uuid.UUID        `json:"item_id"`
	CreatedAt time.Time        `json:"created_at"`
}
