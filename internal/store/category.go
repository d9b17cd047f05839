// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gogevgelija/internal/models"
	"gogevgelija/internal/slug"
	"gogevgelija/internal/taxonomy"
)

// CategoryStore manages the hierarchical category taxonomy.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, name_en, name_mk, slug, description, description_en, description_mk,
	icon, color, parent_id, level, sort_order, is_active, show_in_search, show_in_navigation,
	trending, featured, applies_to, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.NameEN, &c.NameMK, &c.Slug,
		&c.Description, &c.DescriptionEN, &c.DescriptionMK,
		&c.Icon, &c.Color, &c.ParentID, &c.Level, &c.SortOrder,
		&c.IsActive, &c.ShowInSearch, &c.ShowInNav,
		&c.Trending, &c.Featured, &c.AppliesTo,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories in canonical (level, sort_order, name) order.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY level, sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// ListActive returns active categories in canonical order.
func (s *CategoryStore) ListActive() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE is_active
		ORDER BY level, sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Tree loads all categories and builds the hierarchy snapshot. Build
// rejects corrupted parent data, so a non-nil Tree is cycle-free.
func (s *CategoryStore) Tree() (*taxonomy.Tree, error) {
	flat, err := s.List()
	if err != nil {
		return nil, err
	}
	tree, err := taxonomy.Build(flat)
	if err != nil {
		return nil, fmt.Errorf("build category tree: %w", err)
	}
	return tree, nil
}

// FindByID retrieves a category by UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(categorySlug string) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, categorySlug,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category. The slug is derived from the English
// name when absent and deduplicated with numeric suffixes; level is
// recomputed from the parent chain, never taken from input.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	if err := s.prepare(c); err != nil {
		return nil, err
	}

	created, err := scanCategory(s.db.QueryRow(`
		INSERT INTO categories (name, name_en, name_mk, slug, description, description_en, description_mk,
			icon, color, parent_id, level, sort_order, is_active, show_in_search, show_in_navigation,
			trending, featured, applies_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+categoryColumns,
		c.Name, c.NameEN, c.NameMK, c.Slug,
		c.Description, c.DescriptionEN, c.DescriptionMK,
		c.Icon, c.Color, c.ParentID, c.Level, c.SortOrder,
		c.IsActive, c.ShowInSearch, c.ShowInNav,
		c.Trending, c.Featured, c.AppliesTo,
	))
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// Update saves changes to an existing category. Reparenting recomputes
// the levels of the whole subtree.
func (s *CategoryStore) Update(c *models.Category) (*models.Category, error) {
	if err := s.prepare(c); err != nil {
		return nil, err
	}

	updated, err := scanCategory(s.db.QueryRow(`
		UPDATE categories SET
			name = $1, name_en = $2, name_mk = $3, slug = $4,
			description = $5, description_en = $6, description_mk = $7,
			icon = $8, color = $9, parent_id = $10, level = $11, sort_order = $12,
			is_active = $13, show_in_search = $14, show_in_navigation = $15,
			trending = $16, featured = $17, applies_to = $18, updated_at = NOW()
		WHERE id = $19
		RETURNING `+categoryColumns,
		c.Name, c.NameEN, c.NameMK, c.Slug,
		c.Description, c.DescriptionEN, c.DescriptionMK,
		c.Icon, c.Color, c.ParentID, c.Level, c.SortOrder,
		c.IsActive, c.ShowInSearch, c.ShowInNav,
		c.Trending, c.Featured, c.AppliesTo, c.ID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	if err := s.recomputeLevels(); err != nil {
		return nil, err
	}
	return updated, nil
}

// prepare fills derived fields before a write: default applies_to, slug
// derivation and deduplication, cycle refusal, and level computation.
func (s *CategoryStore) prepare(c *models.Category) error {
	if c.AppliesTo == "" {
		c.AppliesTo = models.AppliesToBoth
	}

	if c.Slug == "" {
		base := c.NameEN
		if base == "" {
			base = c.Name
		}
		c.Slug = slug.Generate(base)
	}
	c.Slug = slug.Unique(c.Slug, func(candidate string) bool {
		var exists bool
		err := s.db.QueryRow(
			`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)`,
			candidate, c.ID,
		).Scan(&exists)
		return err == nil && exists
	})

	level, err := s.levelFor(c.ID, c.ParentID)
	if err != nil {
		return err
	}
	c.Level = level
	return nil
}

// levelFor walks the parent chain to compute a node's level, refusing
// chains that would lead back to the node itself.
func (s *CategoryStore) levelFor(id uuid.UUID, parentID *uuid.UUID) (int, error) {
	level := 0
	visited := map[uuid.UUID]struct{}{}
	if id != uuid.Nil {
		visited[id] = struct{}{}
	}
	cur := parentID
	for cur != nil {
		if _, seen := visited[*cur]; seen {
			return 0, fmt.Errorf("category parent cycle through %s", *cur)
		}
		visited[*cur] = struct{}{}

		var next *uuid.UUID
		err := s.db.QueryRow(`SELECT parent_id FROM categories WHERE id = $1`, *cur).Scan(&next)
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("parent category %s not found", *cur)
		}
		if err != nil {
			return 0, fmt.Errorf("resolve parent chain: %w", err)
		}
		level++
		cur = next
	}
	return level, nil
}

// recomputeLevels rewrites the level column for every category from the
// authoritative parent chains. Run after reparenting, since children of
// a moved node keep stale levels otherwise.
func (s *CategoryStore) recomputeLevels() error {
	tree, err := s.Tree()
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("recompute levels: %w", err)
	}
	defer tx.Rollback()

	for _, c := range tree.Roots() {
		if err := s.writeLevels(tx, tree, c.ID, 0); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("recompute levels commit: %w", err)
	}
	return nil
}

func (s *CategoryStore) writeLevels(tx *sql.Tx, tree *taxonomy.Tree, id uuid.UUID, level int) error {
	if _, err := tx.Exec(`UPDATE categories SET level = $1 WHERE id = $2 AND level <> $1`, level, id); err != nil {
		return fmt.Errorf("write level: %w", err)
	}
	for _, child := range tree.Children(id) {
		if err := s.writeLevels(tx, tree, child.ID, level+1); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a category. Children cascade at the database level.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// DirectItemCounts returns the number of active listings and events
// attached directly to each category. Aggregation over descendant sets
// happens in the taxonomy layer at read time; nothing is stored.
func (s *CategoryStore) DirectItemCounts() (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)

	collect := func(query string) error {
		rows, err := s.db.Query(query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id uuid.UUID
			var n int
			if err := rows.Scan(&id, &n); err != nil {
				return err
			}
			counts[id] += n
		}
		return rows.Err()
	}

	if err := collect(`
		SELECT category_id, COUNT(*) FROM listings
		WHERE is_active AND category_id IS NOT NULL
		GROUP BY category_id
	`); err != nil {
		return nil, fmt.Errorf("count listings per category: %w", err)
	}
	if err := collect(`
		SELECT category_id, COUNT(*) FROM events
		WHERE is_active AND category_id IS NOT NULL
		GROUP BY category_id
	`); err != nil {
		return nil, fmt.Errorf("count events per category: %w", err)
	}
	return counts, nil
}

// ItemCount sums the direct counts of a category's descendant set,
// itself included.
func ItemCount(tree *taxonomy.Tree, direct map[uuid.UUID]int, id uuid.UUID) int {
	total := 0
	for _, did := range tree.DescendantIDs(id, true) {
		total += direct[did]
	}
	return total
}
