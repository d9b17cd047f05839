// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogevgelija/internal/hours"
	"gogevgelija/internal/i18n"
	"gogevgelija/internal/models"
	"gogevgelija/internal/taxonomy"
)

func TestListingPayloadLocalization(t *testing.T) {
	l := &models.Listing{
		ID:       uuid.New(),
		Title:    "Kafana",
		TitleEN:  "Tavern",
		TitleMK:  "Кафана",
		Tags:     models.StringList{"coffee"},
		TagsMK:   models.StringList{"кафе"},
		Image:    "a.jpg",
		Image3:   "b.jpg",
		IsActive: true,
	}

	en := listingPayload(l, i18n.English, nil, time.Now())
	assert.Equal(t, "Tavern", en.Title)
	assert.Equal(t, models.StringList{"coffee"}, en.Tags)

	mk := listingPayload(l, i18n.Macedonian, nil, time.Now())
	assert.Equal(t, "Кафана", mk.Title)
	assert.Equal(t, models.StringList{"кафе"}, mk.Tags)

	// Empty image slots collapse out of the gallery.
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, en.Images)
}

func TestListingPayloadMacedonianFallsBackToEnglish(t *testing.T) {
	l := &models.Listing{ID: uuid.New(), TitleEN: "Bakery"}

	mk := listingPayload(l, i18n.Macedonian, nil, time.Now())
	assert.Equal(t, "Bakery", mk.Title)
}

func TestListingPayloadManualOverrideWinsOverSchedule(t *testing.T) {
	eval, err := hours.NewEvaluator(hours.DefaultTimezone)
	require.NoError(t, err)

	closed := false
	l := &models.Listing{
		ID:             uuid.New(),
		ShowOpenStatus: true,
		ManualOpen:     &closed,
		WorkingHours:   models.JSONMap{"monday": "00:00-23:59"},
	}
	// Monday noon, the schedule alone would say open.
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	v := listingPayload(l, i18n.English, eval, now)
	assert.Equal(t, hours.Closed, v.OpenStatus)

	l.ManualOpen = nil
	v = listingPayload(l, i18n.English, eval, now)
	assert.Equal(t, hours.Open, v.OpenStatus)
}

func TestListingPayloadOptedOutIsUnknown(t *testing.T) {
	eval, err := hours.NewEvaluator(hours.DefaultTimezone)
	require.NoError(t, err)

	l := &models.Listing{
		ID:           uuid.New(),
		WorkingHours: models.JSONMap{"monday": "08:00-16:00"},
	}
	v := listingPayload(l, i18n.English, eval, time.Now())
	assert.Equal(t, hours.Unknown, v.OpenStatus)
}

func TestEventPayloadLocalization(t *testing.T) {
	e := &models.Event{
		ID:             uuid.New(),
		TitleEN:        "Wine Festival",
		TitleMK:        "Фестивал на вино",
		EntryPriceEN:   "Free",
		Expectations:   models.ExpectationList{{Text: "live music"}},
		ExpectationsMK: models.ExpectationList{{Text: "жива музика"}},
		JoinCount:      7,
	}

	mk := eventPayload(e, i18n.Macedonian)
	assert.Equal(t, "Фестивал на вино", mk.Title)
	assert.Equal(t, "Free", mk.EntryPrice) // mk missing, falls back
	assert.Equal(t, models.ExpectationList{{Text: "жива музика"}}, mk.Expectations)
	assert.Equal(t, 7, mk.JoinCount)
}

func TestPromotionPayloadExpiry(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	p := &models.Promotion{ID: uuid.New(), TitleEN: "Happy Hour", ValidUntil: &past}
	assert.True(t, promotionPayload(p, i18n.English, now).Expired)

	p.ValidUntil = &future
	assert.False(t, promotionPayload(p, i18n.English, now).Expired)

	p.ValidUntil = nil
	assert.False(t, promotionPayload(p, i18n.English, now).Expired)
}

func TestCategoryPayloadAggregatesAndSkipsInactiveChildren(t *testing.T) {
	rootID, activeID, hiddenID := uuid.New(), uuid.New(), uuid.New()
	cats := []models.Category{
		{ID: rootID, Name: "Food", NameMK: "Храна", Slug: "food", IsActive: true},
		{ID: activeID, Name: "Cafes", Slug: "cafes", ParentID: &rootID, Level: 1, IsActive: true},
		{ID: hiddenID, Name: "Hidden", Slug: "hidden", ParentID: &rootID, Level: 1},
	}
	tree, err := taxonomy.Build(cats)
	require.NoError(t, err)

	direct := map[uuid.UUID]int{rootID: 2, activeID: 3, hiddenID: 5}

	v := categoryPayload(tree, direct, tree.Get(rootID), i18n.Macedonian, true)
	assert.Equal(t, "Храна", v.Name)
	// Counts aggregate over all descendants, hidden ones included.
	assert.Equal(t, 10, v.ItemCount)
	// Inactive children stay out of the payload.
	require.Len(t, v.Children, 1)
	assert.Equal(t, activeID, v.Children[0].ID)
	assert.Equal(t, 3, v.Children[0].ItemCount)
}

func TestBlogPayloadLocalization(t *testing.T) {
	b := &models.Blog{
		ID:       uuid.New(),
		TitleEN:  "Top 10 Restaurants",
		TitleMK:  "Топ 10 ресторани",
		Category: models.BlogCategoryGuides,
	}

	assert.Equal(t, "Топ 10 ресторани", blogPayload(b, i18n.Macedonian).Title)
	assert.Equal(t, "Top 10 Restaurants", blogPayload(b, i18n.English).Title)
	assert.Equal(t, models.BlogCategoryGuides, blogPayload(b, i18n.English).Category)
}
