// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"gogevgelija/internal/models"
)

func TestListingStoreCRUD(t *testing.T) {
	db := testDB(t)
	s := NewListingStore(db)

	t.Cleanup(func() { cleanListings(t, db, "Store Test Tavern") })

	l, err := s.Create(&models.Listing{
		TitleEN:       "Store Test Tavern",
		TitleMK:       "Таверна",
		DescriptionEN: "A cozy place",
		Tags:          models.StringList{"food", "wine"},
		TagsMK:        models.StringList{"храна"},
		WorkingHours:  models.JSONMap{"monday": "08:00 - 23:00"},
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(l.Tags) != 2 {
		t.Errorf("tags round-trip = %v", l.Tags)
	}

	l.TitleMK = "Нова Таверна"
	updated, err := s.Update(l)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.TitleMK != "Нова Таверна" {
		t.Errorf("updated title_mk = %q", updated.TitleMK)
	}

	found, err := s.FindByID(l.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.WorkingHours["monday"] != "08:00 - 23:00" {
		t.Errorf("working hours round-trip failed: %+v", found)
	}

	if err := s.Delete(l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(l.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if gone != nil {
		t.Error("listing still present after delete")
	}
}

func TestListingStoreFilters(t *testing.T) {
	db := testDB(t)
	s := NewListingStore(db)
	cats := NewCategoryStore(db)

	t.Cleanup(func() {
		cleanListings(t, db, "Store Filter Active", "Store Filter Inactive", "Store Filter Featured")
		cleanCategories(t, db, "store-test-filter")
	})

	cat, err := cats.Create(&models.Category{NameEN: "Filter", Slug: "store-test-filter", IsActive: true})
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	if _, err := s.Create(&models.Listing{TitleEN: "Store Filter Active", CategoryID: &cat.ID, IsActive: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(&models.Listing{TitleEN: "Store Filter Inactive", CategoryID: &cat.ID, IsActive: false}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	featured := true
	if _, err := s.Create(&models.Listing{TitleEN: "Store Filter Featured", CategoryID: &cat.ID, IsActive: true, Featured: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, total, err := s.List(ListingFilter{CategoryIDs: []uuid.UUID{cat.ID}, ActiveOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("active in category = %d (total %d), want 2", len(items), total)
	}

	items, _, err = s.List(ListingFilter{CategoryIDs: []uuid.UUID{cat.ID}, ActiveOnly: true, Featured: &featured})
	if err != nil {
		t.Fatalf("List featured: %v", err)
	}
	if len(items) != 1 || items[0].TitleEN != "Store Filter Featured" {
		t.Errorf("featured filter returned %+v", items)
	}

	// Pagination caps the page but reports the full total.
	items, total, err = s.List(ListingFilter{CategoryIDs: []uuid.UUID{cat.ID}, ActiveOnly: true, Limit: 1})
	if err != nil {
		t.Fatalf("List paginated: %v", err)
	}
	if len(items) != 1 || total != 2 {
		t.Errorf("page len = %d total = %d, want 1 and 2", len(items), total)
	}
}
