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

// BlogStore manages editorial articles.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore returns a new BlogStore.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

const blogColumns = `id, title, title_en, title_mk, subtitle, subtitle_en, subtitle_mk,
	content, content_en, content_mk, author, author_en, author_mk, category, tags, tags_mk,
	image, read_time_minutes, featured, published, created_at, updated_at`

// scanBlog scans a row into a Blog struct.
func scanBlog(scanner interface{ Scan(...any) error }) (*models.Blog, error) {
	var b models.Blog
	err := scanner.Scan(
		&b.ID, &b.Title, &b.TitleEN, &b.TitleMK,
		&b.Subtitle, &b.SubtitleEN, &b.SubtitleMK,
		&b.Content, &b.ContentEN, &b.ContentMK,
		&b.Author, &b.AuthorEN, &b.AuthorMK, &b.Category,
		&b.Tags, &b.TagsMK, &b.Image, &b.ReadTimeMinutes,
		&b.Featured, &b.Published, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BlogFilter narrows List results. Category filters by editorial section;
// PublishedOnly hides drafts from the public surface.
type BlogFilter struct {
	Category      models.BlogCategory
	Featured      *bool
	PublishedOnly bool
	Limit         int
	Offset        int
}

// List returns blogs matching the filter with a total count, newest first.
func (s *BlogStore) List(f BlogFilter) ([]models.Blog, int, error) {
	where := ""
	var args []any

	add := func(cond string) {
		if where == "" {
			where = ` WHERE ` + cond
		} else {
			where += ` AND ` + cond
		}
	}

	if f.PublishedOnly {
		add("published")
	}
	if f.Category != "" {
		args = append(args, f.Category)
		add(fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		add(fmt.Sprintf("featured = $%d", len(args)))
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM blogs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	query := `SELECT ` + blogColumns + ` FROM blogs` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var items []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan blog: %w", err)
		}
		items = append(items, *b)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a blog by UUID. Returns nil if not found.
func (s *BlogStore) FindByID(id uuid.UUID) (*models.Blog, error) {
	b, err := scanBlog(s.db.QueryRow(
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return b, nil
}

// Create inserts a new blog post.
func (s *BlogStore) Create(b *models.Blog) (*models.Blog, error) {
	if b.Category == "" {
		b.Category = models.BlogCategoryNews
	}
	created, err := scanBlog(s.db.QueryRow(`
		INSERT INTO blogs (title, title_en, title_mk, subtitle, subtitle_en, subtitle_mk,
			content, content_en, content_mk, author, author_en, author_mk, category, tags, tags_mk,
			image, read_time_minutes, featured, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING `+blogColumns,
		b.Title, b.TitleEN, b.TitleMK, b.Subtitle, b.SubtitleEN, b.SubtitleMK,
		b.Content, b.ContentEN, b.ContentMK, b.Author, b.AuthorEN, b.AuthorMK,
		b.Category, b.Tags, b.TagsMK, b.Image, b.ReadTimeMinutes, b.Featured, b.Published,
	))
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// Update saves changes to an existing blog post. Returns nil if not found.
func (s *BlogStore) Update(b *models.Blog) (*models.Blog, error) {
	updated, err := scanBlog(s.db.QueryRow(`
		UPDATE blogs SET
			title = $1, title_en = $2, title_mk = $3,
			subtitle = $4, subtitle_en = $5, subtitle_mk = $6,
			content = $7, content_en = $8, content_mk = $9,
			author = $10, author_en = $11, author_mk = $12,
			category = $13, tags = $14, tags_mk = $15,
			image = $16, read_time_minutes = $17, featured = $18, published = $19,
			updated_at = NOW()
		WHERE id = $20
		RETURNING `+blogColumns,
		b.Title, b.TitleEN, b.TitleMK, b.Subtitle, b.SubtitleEN, b.SubtitleMK,
		b.Content, b.ContentEN, b.ContentMK, b.Author, b.AuthorEN, b.AuthorMK,
		b.Category, b.Tags, b.TagsMK, b.Image, b.ReadTimeMinutes, b.Featured, b.Published, b.ID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return updated, nil
}

// Delete removes a blog post by ID.
func (s *BlogStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}
