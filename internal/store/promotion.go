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

// PromotionStore manages time-limited deals.
type PromotionStore struct {
	db *sql.DB
}

// NewPromotionStore returns a new PromotionStore.
func NewPromotionStore(db *sql.DB) *PromotionStore {
	return &PromotionStore{db: db}
}

const promotionColumns = `id, title, title_en, title_mk, description, description_en, description_mk,
	address, address_en, address_mk, tags, tags_mk, discount_code, discount_label, image, valid_until,
	phone, facebook, instagram, website, featured, created_at, updated_at`

// scanPromotion scans a row into a Promotion struct.
func scanPromotion(scanner interface{ Scan(...any) error }) (*models.Promotion, error) {
	var p models.Promotion
	err := scanner.Scan(
		&p.ID, &p.Title, &p.TitleEN, &p.TitleMK,
		&p.Description, &p.DescriptionEN, &p.DescriptionMK,
		&p.Address, &p.AddressEN, &p.AddressMK,
		&p.Tags, &p.TagsMK,
		&p.DiscountCode, &p.DiscountLabel, &p.Image, &p.ValidUntil,
		&p.Phone, &p.Facebook, &p.Instagram, &p.Website,
		&p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PromotionFilter narrows List results. CurrentOnly excludes promotions
// whose validity window has passed; expired rows stay addressable by ID.
type PromotionFilter struct {
	Featured    *bool
	CurrentOnly bool
	Limit       int
	Offset      int
}

// List returns promotions matching the filter with a total count, newest first.
func (s *PromotionStore) List(f PromotionFilter) ([]models.Promotion, int, error) {
	where := ""
	var args []any

	if f.CurrentOnly {
		where = ` WHERE (valid_until IS NULL OR valid_until >= NOW())`
	}
	if f.Featured != nil {
		if where == "" {
			where = ` WHERE`
		} else {
			where += ` AND`
		}
		args = append(args, *f.Featured)
		where += fmt.Sprintf(` featured = $%d`, len(args))
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM promotions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count promotions: %w", err)
	}

	query := `SELECT ` + promotionColumns + ` FROM promotions` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	var items []models.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan promotion: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a promotion by UUID. Returns nil if not found.
func (s *PromotionStore) FindByID(id uuid.UUID) (*models.Promotion, error) {
	p, err := scanPromotion(s.db.QueryRow(
		`SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find promotion by id: %w", err)
	}
	return p, nil
}

// Create inserts a new promotion.
func (s *PromotionStore) Create(p *models.Promotion) (*models.Promotion, error) {
	created, err := scanPromotion(s.db.QueryRow(`
		INSERT INTO promotions (title, title_en, title_mk, description, description_en, description_mk,
			address, address_en, address_mk, tags, tags_mk, discount_code, discount_label, image, valid_until,
			phone, facebook, instagram, website, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING `+promotionColumns,
		p.Title, p.TitleEN, p.TitleMK, p.Description, p.DescriptionEN, p.DescriptionMK,
		p.Address, p.AddressEN, p.AddressMK, p.Tags, p.TagsMK,
		p.DiscountCode, p.DiscountLabel, p.Image, p.ValidUntil,
		p.Phone, p.Facebook, p.Instagram, p.Website, p.Featured,
	))
	if err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}
	return created, nil
}

// Update saves changes to an existing promotion. Returns nil if not found.
func (s *PromotionStore) Update(p *models.Promotion) (*models.Promotion, error) {
	updated, err := scanPromotion(s.db.QueryRow(`
		UPDATE promotions SET
			title = $1, title_en = $2, title_mk = $3,
			description = $4, description_en = $5, description_mk = $6,
			address = $7, address_en = $8, address_mk = $9,
			tags = $10, tags_mk = $11,
			discount_code = $12, discount_label = $13, image = $14, valid_until = $15,
			phone = $16, facebook = $17, instagram = $18, website = $19,
			featured = $20, updated_at = NOW()
		WHERE id = $21
		RETURNING `+promotionColumns,
		p.Title, p.TitleEN, p.TitleMK, p.Description, p.DescriptionEN, p.DescriptionMK,
		p.Address, p.AddressEN, p.AddressMK, p.Tags, p.TagsMK,
		p.DiscountCode, p.DiscountLabel, p.Image, p.ValidUntil,
		p.Phone, p.Facebook, p.Instagram, p.Website, p.Featured, p.ID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update promotion: %w", err)
	}
	return updated, nil
}

// Delete removes a promotion by ID. Link rows cascade.
func (s *PromotionStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}
	return nil
}
