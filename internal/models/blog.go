// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogCategory is the editorial section a blog post belongs to. Unlike the
// taxonomy used by listings and events, this is a closed enum.
type BlogCategory string

const (
	BlogCategoryGuides    BlogCategory = "guides"
	BlogCategoryFood      BlogCategory = "food"
	BlogCategoryCulture   BlogCategory = "culture"
	BlogCategoryEvents    BlogCategory = "events"
	BlogCategoryLifestyle BlogCategory = "lifestyle"
	BlogCategoryNews      BlogCategory = "news"
)

// Blog represents an editorial article.
type Blog struct {
	ID         uuid.UUID    `json:"id"`
	Title      string       `json:"title"`
	TitleEN    string       `json:"title_en"`
	TitleMK    string       `json:"title_mk"`
	Subtitle   string       `json:"subtitle"`
	SubtitleEN string       `json:"subtitle_en"`
	SubtitleMK string       `json:"subtitle_mk"`
	Content    string       `json:"content"`
	ContentEN  string       `json:"content_en"`
	ContentMK  string       `json:"content_mk"`
	Author     string       `json:"author"`
	AuthorEN   string       `json:"author_en"`
	AuthorMK   string       `json:"author_mk"`
	Category   BlogCategory `json:"category"`

	Tags   StringList `json:"tags"`
	TagsMK StringList `json:"tags_mk"`

	Image           string `json:"image"`
	ReadTimeMinutes int    `json:"read_time_minutes"`

	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
