// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// serialize.go builds the localized public payloads. Each view collapses
// the paired EN/MK columns into single fields for the requested language;
// the bilingual raw models only ever leave through admin endpoints.
package handlers

import (
	"time"

	"github.com/google/uuid"

	"gogevgelija/internal/hours"
	"gogevgelija/internal/i18n"
	"gogevgelija/internal/models"
	"gogevgelija/internal/store"
	"gogevgelija/internal/taxonomy"
)

type categoryView struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Icon        string           `json:"icon,omitempty"`
	Color       *string          `json:"color,omitempty"`
	ParentID    *uuid.UUID       `json:"parent_id"`
	Level       int              `json:"level"`
	SortOrder   int              `json:"sort_order"`
	Trending    bool             `json:"trending"`
	Featured    bool             `json:"featured"`
	AppliesTo   models.AppliesTo `json:"applies_to"`
	ItemCount   int              `json:"item_count"`
	Children    []categoryView   `json:"children,omitempty"`
}

// categoryPayload localizes one category and recursively its subtree.
// Item counts aggregate over the full descendant set.
func categoryPayload(tree *taxonomy.Tree, direct map[uuid.UUID]int, c *models.Category, lang i18n.Language, withChildren bool) categoryView {
	v := categoryView{
		ID:          c.ID,
		Name:        i18n.Text{EN: c.NameEN, MK: c.NameMK, Base: c.Name}.Resolve(lang),
		Slug:        c.Slug,
		Description: i18n.Text{EN: c.DescriptionEN, MK: c.DescriptionMK, Base: c.Description}.Resolve(lang),
		Icon:        c.Icon,
		Color:       c.Color,
		ParentID:    c.ParentID,
		Level:       c.Level,
		SortOrder:   c.SortOrder,
		Trending:    c.Trending,
		Featured:    c.Featured,
		AppliesTo:   c.AppliesTo,
		ItemCount:   store.ItemCount(tree, direct, c.ID),
	}
	if withChildren {
		for _, child := range tree.Children(c.ID) {
			if !child.IsActive {
				continue
			}
			v.Children = append(v.Children, categoryPayload(tree, direct, child, lang, true))
		}
	}
	return v
}

type listingView struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Address      string            `json:"address,omitempty"`
	OpenTime     string            `json:"open_time,omitempty"`
	CategoryID   *uuid.UUID        `json:"category_id"`
	Tags         models.StringList `json:"tags"`
	Amenities    models.StringList `json:"amenities"`
	WorkingHours models.JSONMap    `json:"working_hours,omitempty"`
	Images       []string          `json:"images"`
	Phone        string            `json:"phone,omitempty"`
	Facebook     string            `json:"facebook,omitempty"`
	Instagram    string            `json:"instagram,omitempty"`
	Website      string            `json:"website,omitempty"`
	OpenStatus   hours.Status      `json:"open_status"`
	Featured     bool              `json:"featured"`
	PromotionIDs []uuid.UUID       `json:"promotion_ids,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// listingPayload localizes one listing and computes its open status.
// A manual override wins over the schedule; schedule evaluation always
// runs against the primary working-hours map, since the MK variant is
// display text only.
func listingPayload(l *models.Listing, lang i18n.Language, eval *hours.Evaluator, now time.Time) listingView {
	status := hours.Unknown
	if l.ShowOpenStatus && l.ManualOpen != nil {
		if *l.ManualOpen {
			status = hours.Open
		} else {
			status = hours.Closed
		}
	} else if eval != nil {
		status = eval.EvaluateAt(l.WorkingHours, l.ShowOpenStatus, now)
	}

	return listingView{
		ID:           l.ID,
		Title:        i18n.Text{EN: l.TitleEN, MK: l.TitleMK, Base: l.Title}.Resolve(lang),
		Description:  i18n.Text{EN: l.DescriptionEN, MK: l.DescriptionMK, Base: l.Description}.Resolve(lang),
		Address:      i18n.Text{EN: l.AddressEN, MK: l.AddressMK, Base: l.Address}.Resolve(lang),
		OpenTime:     i18n.Text{EN: l.OpenTimeEN, MK: l.OpenTimeMK, Base: l.OpenTime}.Resolve(lang),
		CategoryID:   l.CategoryID,
		Tags:         i18n.ResolveList(lang, l.Tags, l.TagsMK),
		Amenities:    i18n.ResolveList(lang, l.Amenities, l.AmenitiesMK),
		WorkingHours: i18n.ResolveMap(lang, l.WorkingHours, l.WorkingHoursMK),
		Images:       l.Images(),
		Phone:        l.Phone,
		Facebook:     l.Facebook,
		Instagram:    l.Instagram,
		Website:      l.Website,
		OpenStatus:   status,
		Featured:     l.Featured,
		PromotionIDs: l.PromotionIDs,
		CreatedAt:    l.CreatedAt,
	}
}

type eventView struct {
	ID           uuid.UUID              `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	Location     string                 `json:"location,omitempty"`
	EntryPrice   string                 `json:"entry_price,omitempty"`
	AgeLimit     string                 `json:"age_limit,omitempty"`
	DateTime     string                 `json:"date_time,omitempty"`
	CategoryID   *uuid.UUID             `json:"category_id"`
	Expectations models.ExpectationList `json:"expectations"`
	Image        string                 `json:"image,omitempty"`
	JoinCount    int                    `json:"join_count"`
	Featured     bool                   `json:"featured"`
	ListingIDs   []uuid.UUID            `json:"listing_ids,omitempty"`
	PromotionIDs []uuid.UUID            `json:"promotion_ids,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

func eventPayload(e *models.Event, lang i18n.Language) eventView {
	return eventView{
		ID:           e.ID,
		Title:        i18n.Text{EN: e.TitleEN, MK: e.TitleMK, Base: e.Title}.Resolve(lang),
		Description:  i18n.Text{EN: e.DescriptionEN, MK: e.DescriptionMK, Base: e.Description}.Resolve(lang),
		Location:     i18n.Text{EN: e.LocationEN, MK: e.LocationMK, Base: e.Location}.Resolve(lang),
		EntryPrice:   i18n.Text{EN: e.EntryPriceEN, MK: e.EntryPriceMK, Base: e.EntryPrice}.Resolve(lang),
		AgeLimit:     i18n.Text{EN: e.AgeLimitEN, MK: e.AgeLimitMK, Base: e.AgeLimit}.Resolve(lang),
		DateTime:     e.DateTime,
		CategoryID:   e.CategoryID,
		Expectations: i18n.ResolveList(lang, e.Expectations, e.ExpectationsMK),
		Image:        e.Image,
		JoinCount:    e.JoinCount,
		Featured:     e.Featured,
		ListingIDs:   e.ListingIDs,
		PromotionIDs: e.PromotionIDs,
		CreatedAt:    e.CreatedAt,
	}
}

type promotionView struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	Address       string            `json:"address,omitempty"`
	Tags          models.StringList `json:"tags"`
	DiscountCode  string            `json:"discount_code,omitempty"`
	DiscountLabel string            `json:"discount_label,omitempty"`
	Image         string            `json:"image,omitempty"`
	ValidUntil    *time.Time        `json:"valid_until,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Facebook      string            `json:"facebook,omitempty"`
	Instagram     string            `json:"instagram,omitempty"`
	Website       string            `json:"website,omitempty"`
	Featured      bool              `json:"featured"`
	Expired       bool              `json:"expired"`
	CreatedAt     time.Time         `json:"created_at"`
}

func promotionPayload(p *models.Promotion, lang i18n.Language, now time.Time) promotionView {
	return promotionView{
		ID:            p.ID,
		Title:         i18n.Text{EN: p.TitleEN, MK: p.TitleMK, Base: p.Title}.Resolve(lang),
		Description:   i18n.Text{EN: p.DescriptionEN, MK: p.DescriptionMK, Base: p.Description}.Resolve(lang),
		Address:       i18n.Text{EN: p.AddressEN, MK: p.AddressMK, Base: p.Address}.Resolve(lang),
		Tags:          i18n.ResolveList(lang, p.Tags, p.TagsMK),
		DiscountCode:  p.DiscountCode,
		DiscountLabel: p.DiscountLabel,
		Image:         p.Image,
		ValidUntil:    p.ValidUntil,
		Phone:         p.Phone,
		Facebook:      p.Facebook,
		Instagram:     p.Instagram,
		Website:       p.Website,
		Featured:      p.Featured,
		Expired:       p.IsExpired(now),
		CreatedAt:     p.CreatedAt,
	}
}

type blogView struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Subtitle        string              `json:"subtitle,omitempty"`
	Content         string              `json:"content,omitempty"`
	Author          string              `json:"author,omitempty"`
	Category        models.BlogCategory `json:"category"`
	Tags            models.StringList   `json:"tags"`
	Image           string              `json:"image,omitempty"`
	ReadTimeMinutes int                 `json:"read_time_minutes"`
	Featured        bool                `json:"featured"`
	CreatedAt       time.Time           `json:"created_at"`
}

func blogPayload(b *models.Blog, lang i18n.Language) blogView {
	return blogView{
		ID:              b.ID,
		Title:           i18n.Text{EN: b.TitleEN, MK: b.TitleMK, Base: b.Title}.Resolve(lang),
		Subtitle:        i18n.Text{EN: b.SubtitleEN, MK: b.SubtitleMK, Base: b.Subtitle}.Resolve(lang),
		Content:         i18n.Text{EN: b.ContentEN, MK: b.ContentMK, Base: b.Content}.Resolve(lang),
		Author:          i18n.Text{EN: b.AuthorEN, MK: b.AuthorMK, Base: b.Author}.Resolve(lang),
		Category:        b.Category,
		Tags:            i18n.ResolveList(lang, b.Tags, b.TagsMK),
		Image:           b.Image,
		ReadTimeMinutes: b.ReadTimeMinutes,
		Featured:        b.Featured,
		CreatedAt:       b.CreatedAt,
	}
}
