// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"gogevgelija/internal/middleware"
	"gogevgelija/internal/models"
	"gogevgelija/internal/store"
)

// Wishlist groups the authenticated saved-items endpoints.
type Wishlist struct {
	wishlist *store.WishlistStore
}

// NewWishlist creates a new Wishlist handler group.
func NewWishlist(wishlist *store.WishlistStore) *Wishlist {
	return &Wishlist{wishlist: wishlist}
}

type wishlistItemRequest struct {
	ItemType string    `json:"item_type" validate:"required,oneof=listing event promotion blog"`
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
}

// List returns the user's saved items, optionally filtered by ?type=.
func (h *Wishlist) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	itemType := models.WishlistItemType(r.URL.Query().Get("type"))
	if itemType != "" && !models.ValidWishlistItemType(itemType) {
		writeError(w, http.StatusBadRequest, "unknown item type")
		return
	}

	items, err := h.wishlist.List(claims.UserID, itemType)
	if err != nil {
		slog.Error("list wishlist failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Add saves an item. Saving twice is idempotent.
func (h *Wishlist) Add(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req wishlistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.wishlist.Add(claims.UserID, models.WishlistItemType(req.ItemType), req.ItemID)
	if err != nil {
		slog.Error("add wishlist item failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Remove deletes a saved item. Removing an absent item still succeeds.
func (h *Wishlist) Remove(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req wishlistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.wishlist.Remove(claims.UserID, models.WishlistItemType(req.ItemType), req.ItemID); err != nil {
		slog.Error("remove wishlist item failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

// Check reports whether an item is saved.
func (h *Wishlist) Check(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req wishlistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	saved, err := h.wishlist.Contains(claims.UserID, models.WishlistItemType(req.ItemType), req.ItemID)
	if err != nil {
		slog.Error("check wishlist item failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}
