// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Promotion represents a time-limited deal or discount offered by a venue.
type Promotion struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	TitleEN       string    `json:"title_en"`
	TitleMK       string    `json:"title_mk"`
	Description   string    `json:"description"`
	DescriptionEN string    `json:"description_en"`
	DescriptionMK string    `json:"description_mk"`
	Address       string    `json:"address"`
	AddressEN     string    `json:"address_en"`
	AddressMK     string    `json:"address_mk"`

	Tags   StringList `json:"tags"`
	TagsMK StringList `json:"tags_mk"`

	DiscountCode  string     `json:"discount_code"`
	DiscountLabel string     `json:"discount_label"`
	Image         string     `json:"image"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`

	Phone     string `json:"phone"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Website   string `json:"website"`

	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExpired returns true once the promotion's validity window has passed.
func (p *Promotion) IsExpired(now time.Time) bool {
	return p.ValidUntil != nil && now.After(*p.ValidUntil)
}
