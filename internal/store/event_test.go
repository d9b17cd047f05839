// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"gogevgelija/internal/models"
)

func TestEventStoreJoinUnjoin(t *testing.T) {
	db := testDB(t)
	events := NewEventStore(db)
	users := NewUserStore(db)

	email := "store-test-joiner@example.com"
	t.Cleanup(func() {
		cleanEvents(t, db, "Store Test Festival")
		cleanUsers(t, db, email)
	})

	e, err := events.Create(&models.Event{
		TitleEN:  "Store Test Festival",
		DateTime: "12-14 September, from 20:00",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create event: %v", err)
	}
	u, err := users.Create(email, "secret123", "Joiner", models.RoleMember, "en")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	count, err := events.Join(e.ID, u.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if count != 1 {
		t.Errorf("join count = %d, want 1", count)
	}

	// Joining twice must not double-count.
	count, err = events.Join(e.ID, u.ID)
	if err != nil {
		t.Fatalf("Join again: %v", err)
	}
	if count != 1 {
		t.Errorf("join count after repeat = %d, want 1", count)
	}

	joined, err := events.HasJoined(e.ID, u.ID)
	if err != nil || !joined {
		t.Errorf("HasJoined = %v, %v; want true", joined, err)
	}

	count, err = events.Unjoin(e.ID, u.ID)
	if err != nil {
		t.Fatalf("Unjoin: %v", err)
	}
	if count != 0 {
		t.Errorf("join count after unjoin = %d, want 0", count)
	}

	// Unjoining when not joined is a no-op and never goes negative.
	count, err = events.Unjoin(e.ID, u.ID)
	if err != nil {
		t.Fatalf("Unjoin again: %v", err)
	}
	if count != 0 {
		t.Errorf("join count after repeat unjoin = %d, want 0", count)
	}
}

func TestEventStoreExpectationsRoundTrip(t *testing.T) {
	db := testDB(t)
	events := NewEventStore(db)

	t.Cleanup(func() { cleanEvents(t, db, "Store Test Concert") })

	e, err := events.Create(&models.Event{
		TitleEN: "Store Test Concert",
		Expectations: models.ExpectationList{
			{Icon: "music", Text: "Live bands"},
			{Icon: "drinks", Text: "Open bar"},
		},
		ExpectationsMK: models.ExpectationList{
			{Icon: "music", Text: "Музика во живо"},
		},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := events.FindByID(e.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(found.Expectations) != 2 || found.Expectations[1].Text != "Open bar" {
		t.Errorf("expectations round-trip: %+v", found.Expectations)
	}
	if len(found.ExpectationsMK) != 1 {
		t.Errorf("expectations_mk round-trip: %+v", found.ExpectationsMK)
	}
}

func TestEventStoreLinks(t *testing.T) {
	db := testDB(t)
	events := NewEventStore(db)
	listings := NewListingStore(db)

	t.Cleanup(func() {
		cleanEvents(t, db, "Store Test Linked")
		cleanListings(t, db, "Store Test Venue")
	})

	e, err := events.Create(&models.Event{TitleEN: "Store Test Linked", IsActive: true})
	if err != nil {
		t.Fatalf("Create event: %v", err)
	}
	l, err := listings.Create(&models.Listing{TitleEN: "Store Test Venue", IsActive: true})
	if err != nil {
		t.Fatalf("Create listing: %v", err)
	}

	if err := events.SetListings(e.ID, []uuid.UUID{l.ID}); err != nil {
		t.Fatalf("SetListings: %v", err)
	}

	found, err := events.FindByID(e.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(found.ListingIDs) != 1 || found.ListingIDs[0] != l.ID {
		t.Errorf("listing links = %v", found.ListingIDs)
	}

	// Replacing with an empty set clears the links.
	if err := events.SetListings(e.ID, nil); err != nil {
		t.Fatalf("SetListings empty: %v", err)
	}
	found, _ = events.FindByID(e.ID)
	if len(found.ListingIDs) != 0 {
		t.Errorf("links not cleared: %v", found.ListingIDs)
	}
}
