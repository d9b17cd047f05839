// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a happening in the city: concerts, festivals, markets.
// DateTime is free-form display text, not a timestamp; events are curated
// by editors and often span ranges ("12-14 September, from 20:00").
type Event struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	TitleEN       string     `json:"title_en"`
	TitleMK       string     `json:"title_mk"`
	Description   string     `json:"description"`
	DescriptionEN string     `json:"description_en"`
	DescriptionMK string     `json:"description_mk"`
	Location      string     `json:"location"`
	LocationEN    string     `json:"location_en"`
	LocationMK    string     `json:"location_mk"`
	EntryPrice    string     `json:"entry_price"`
	EntryPriceEN  string     `json:"entry_price_en"`
	EntryPriceMK  string     `json:"entry_price_mk"`
	AgeLimit      string     `json:"age_limit"`
	AgeLimitEN    string     `json:"age_limit_en"`
	AgeLimitMK    string     `json:"age_limit_mk"`
	DateTime      string     `json:"date_time"`
	CategoryID    *uuid.UUID `json:"category_id"`

	Expectations   ExpectationList `json:"expectations"`
	ExpectationsMK ExpectationList `json:"expectations_mk"`

	Image     string `json:"image"`
	JoinCount int    `json:"join_count"`

	IsActive  bool      `json:"is_active"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	ListingIDs   []uuid.UUID `json:"listing_ids,omitempty"`
	PromotionIDs []uuid.UUID `json:"promotion_ids,omitempty"`
}

// EventJoin records a user's intent to attend an event. One row per
// (user, event) pair.
type EventJoin struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	EventID   uuid.UUID `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}
