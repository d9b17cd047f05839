// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gogevgelija/internal/models"
)

// WishlistStore manages per-user saved items.
type WishlistStore struct {
	db *sql.DB
}

// NewWishlistStore returns a new WishlistStore.
func NewWishlistStore(db *sql.DB) *WishlistStore {
	return &WishlistStore{db: db}
}

const wishlistColumns = `id, user_id, item_type, item_id, created_at`

func scanWishlistItem(scanner interface{ Scan(...any) error }) (*models.WishlistItem, error) {
	var w models.WishlistItem
	err := scanner.Scan(&w.ID, &w.UserID, &w.ItemType, &w.ItemID, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns a user's saved items, newest first. An optional item type
// narrows the result.
func (s *WishlistStore) List(userID uuid.UUID, itemType models.WishlistItemType) ([]models.WishlistItem, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist_items WHERE user_id = $1`
	args := []any{userID}
	if itemType != "" {
		query += ` AND item_type = $2`
		args = append(args, itemType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	var items []models.WishlistItem
	for rows.Next() {
		w, err := scanWishlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, *w)
	}
	return items, rows.Err()
}

// wishlistTables maps item types to the tables their IDs reference.
// The (type, id) pair is a tagged reference, not a foreign key, so the
// referenced row has to be probed per type.
var wishlistTables = map[models.WishlistItemType]string{
	models.WishlistItemListing:   "listings",
	models.WishlistItemEvent:     "events",
	models.WishlistItemPromotion: "promotions",
	models.WishlistItemBlog:      "blogs",
}

// itemExists reports whether the referenced content row exists.
func (s *WishlistStore) itemExists(itemType models.WishlistItemType, itemID uuid.UUID) (bool, error) {
	table, ok := wishlistTables[itemType]
	if !ok {
		return false, fmt.Errorf("unknown wishlist item type %q", itemType)
	}
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s exists: %w", itemType, err)
	}
	return exists, nil
}

// Add saves an item for a user. Saving the same item twice returns the
// existing entry instead of erroring. Returns nil if the referenced
// content row does not exist.
func (s *WishlistStore) Add(userID uuid.UUID, itemType models.WishlistItemType, itemID uuid.UUID) (*models.WishlistItem, error) {
	exists, err := s.itemExists(itemType, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	w, err := scanWishlistItem(s.db.QueryRow(`
		INSERT INTO wishlist_items (user_id, item_type, item_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_type, item_id) DO UPDATE SET item_id = EXCLUDED.item_id
		RETURNING `+wishlistColumns,
		userID, itemType, itemID,
	))
	if err != nil {
		return nil, fmt.Errorf("add wishlist item: %w", err)
	}
	return w, nil
}

// Remove deletes a saved item. Removing an absent item is a no-op.
func (s *WishlistStore) Remove(userID uuid.UUID, itemType models.WishlistItemType, itemID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM wishlist_items WHERE user_id = $1 AND item_type = $2 AND item_id = $3
	`, userID, itemType, itemID)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	return nil
}

// Contains reports whether a user has saved a specific item.
func (s *WishlistStore) Contains(userID uuid.UUID, itemType models.WishlistItemType, itemID uuid.UUID) (bool, error) {
	var saved bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM wishlist_items WHERE user_id = $1 AND item_type = $2 AND item_id = $3
		)
	`, userID, itemType, itemID).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("check wishlist item: %w", err)
	}
	return saved, nil
}

// Clear removes all of a user's saved items.
func (s *WishlistStore) Clear(userID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM wishlist_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear wishlist: %w", err)
	}
	return nil
}
