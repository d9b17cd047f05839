// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing represents a venue or business in the city guide. Translatable
// columns come in English and Macedonian variants plus a legacy base
// column; the serializer picks the effective value per request language.
type Listing struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	TitleEN       string     `json:"title_en"`
	TitleMK       string     `json:"title_mk"`
	Description   string     `json:"description"`
	DescriptionEN string     `json:"description_en"`
	DescriptionMK string     `json:"description_mk"`
	Address       string     `json:"address"`
	AddressEN     string     `json:"address_en"`
	AddressMK     string     `json:"address_mk"`
	OpenTime      string     `json:"open_time"`
	OpenTimeEN    string     `json:"open_time_en"`
	OpenTimeMK    string     `json:"open_time_mk"`
	CategoryID    *uuid.UUID `json:"category_id"`

	Tags           StringList `json:"tags"`
	TagsMK         StringList `json:"tags_mk"`
	Amenities      StringList `json:"amenities"`
	AmenitiesMK    StringList `json:"amenities_mk"`
	WorkingHours   JSONMap    `json:"working_hours"`
	WorkingHoursMK JSONMap    `json:"working_hours_mk"`

	Image  string `json:"image"`
	Image2 string `json:"image2"`
	Image3 string `json:"image3"`
	Image4 string `json:"image4"`
	Image5 string `json:"image5"`
	Image6 string `json:"image6"`

	Phone     string `json:"phone"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Website   string `json:"website"`

	// ShowOpenStatus opts the listing into computed open status;
	// ManualOpen overrides the schedule when set.
	ShowOpenStatus bool  `json:"show_open_status"`
	ManualOpen     *bool `json:"manual_open,omitempty"`

	IsActive  bool      `json:"is_active"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	PromotionIDs []uuid.UUID `json:"promotion_ids,omitempty"`
}

// Images returns the non-empty image URLs in display order.
func (l *Listing) Images() []string {
	all := []string{l.Image, l.Image2, l.Image3, l.Image4, l.Image5, l.Image6}
	out := make([]string, 0, len(all))
	for _, img := range all {
		if img != "" {
			out = append(out, img)
		}
	}
	return out
}
