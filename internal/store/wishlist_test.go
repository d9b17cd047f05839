// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"gogevgelija/internal/models"
)

func TestWishlistStoreAddRemove(t *testing.T) {
	db := testDB(t)
	wishlist := NewWishlistStore(db)
	users := NewUserStore(db)
	listings := NewListingStore(db)

	email := "store-test-wishlist@example.com"
	title := "Store Test Wishlist Listing"
	t.Cleanup(func() {
		cleanUsers(t, db, email)
		cleanListings(t, db, title)
	})

	u, err := users.Create(email, "secret123", "Wisher", models.RoleMember, "en")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	l, err := listings.Create(&models.Listing{TitleEN: title, IsActive: true})
	if err != nil {
		t.Fatalf("Create listing: %v", err)
	}

	w, err := wishlist.Add(u.ID, models.WishlistItemListing, l.ID)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if w == nil || w.ItemType != models.WishlistItemListing || w.ItemID != l.ID {
		t.Errorf("unexpected item: %+v", w)
	}

	// Adding the same item twice keeps a single entry.
	if _, err := wishlist.Add(u.ID, models.WishlistItemListing, l.ID); err != nil {
		t.Fatalf("Add again: %v", err)
	}
	items, err := wishlist.List(u.ID, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("list len = %d, want 1", len(items))
	}

	saved, err := wishlist.Contains(u.ID, models.WishlistItemListing, l.ID)
	if err != nil || !saved {
		t.Errorf("Contains = %v, %v; want true", saved, err)
	}

	if err := wishlist.Remove(u.ID, models.WishlistItemListing, l.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	saved, _ = wishlist.Contains(u.ID, models.WishlistItemListing, l.ID)
	if saved {
		t.Error("item still saved after remove")
	}
}

func TestWishlistStoreRejectsDanglingReference(t *testing.T) {
	db := testDB(t)
	wishlist := NewWishlistStore(db)
	users := NewUserStore(db)

	email := "store-test-wishlist-dangling@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := users.Create(email, "secret123", "Wisher", models.RoleMember, "en")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	// No listing row carries this ID; the save must be refused.
	w, err := wishlist.Add(u.ID, models.WishlistItemListing, uuid.New())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if w != nil {
		t.Errorf("saved a reference to a nonexistent listing: %+v", w)
	}

	items, err := wishlist.List(u.ID, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("list len = %d, want 0", len(items))
	}
}

func TestWishlistStoreTypeFilter(t *testing.T) {
	db := testDB(t)
	wishlist := NewWishlistStore(db)
	users := NewUserStore(db)
	events := NewEventStore(db)
	blogs := NewBlogStore(db)

	email := "store-test-wishlist-filter@example.com"
	eventTitle := "Store Test Wishlist Event"
	blogTitle := "Store Test Wishlist Blog"
	t.Cleanup(func() {
		cleanUsers(t, db, email)
		cleanEvents(t, db, eventTitle)
		db.Exec("DELETE FROM blogs WHERE title_en = $1", blogTitle)
	})

	u, err := users.Create(email, "secret123", "Wisher", models.RoleMember, "en")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	e, err := events.Create(&models.Event{TitleEN: eventTitle, IsActive: true})
	if err != nil {
		t.Fatalf("Create event: %v", err)
	}
	b, err := blogs.Create(&models.Blog{TitleEN: blogTitle, Published: true})
	if err != nil {
		t.Fatalf("Create blog: %v", err)
	}

	if _, err := wishlist.Add(u.ID, models.WishlistItemEvent, e.ID); err != nil {
		t.Fatalf("Add event: %v", err)
	}
	if _, err := wishlist.Add(u.ID, models.WishlistItemBlog, b.ID); err != nil {
		t.Fatalf("Add blog: %v", err)
	}

	items, err := wishlist.List(u.ID, models.WishlistItemEvent)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(items) != 1 || items[0].ItemType != models.WishlistItemEvent {
		t.Errorf("filtered list = %+v", items)
	}
}
