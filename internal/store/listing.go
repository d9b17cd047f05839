// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gogevgelija/internal/models"
)

// ListingStore manages venue listings.
type ListingStore struct {
	db *sql.DB
}

// NewListingStore returns a new ListingStore.
func NewListingStore(db *sql.DB) *ListingStore {
	return &ListingStore{db: db}
}

const listingColumns = `id, title, title_en, title_mk, description, description_en, description_mk,
	address, address_en, address_mk, open_time, open_time_en, open_time_mk, category_id,
	tags, tags_mk, amenities, amenities_mk, working_hours, working_hours_mk,
	image, image2, image3, image4, image5, image6,
	phone, facebook, instagram, website,
	show_open_status, manual_open, is_active, featured, created_at, updated_at`

// scanListing scans a row into a Listing struct.
func scanListing(scanner interface{ Scan(...any) error }) (*models.Listing, error) {
	var l models.Listing
	err := scanner.Scan(
		&l.ID, &l.Title, &l.TitleEN, &l.TitleMK,
		&l.Description, &l.DescriptionEN, &l.DescriptionMK,
		&l.Address, &l.AddressEN, &l.AddressMK,
		&l.OpenTime, &l.OpenTimeEN, &l.OpenTimeMK, &l.CategoryID,
		&l.Tags, &l.TagsMK, &l.Amenities, &l.AmenitiesMK,
		&l.WorkingHours, &l.WorkingHoursMK,
		&l.Image, &l.Image2, &l.Image3, &l.Image4, &l.Image5, &l.Image6,
		&l.Phone, &l.Facebook, &l.Instagram, &l.Website,
		&l.ShowOpenStatus, &l.ManualOpen, &l.IsActive, &l.Featured,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListingFilter narrows List results. CategoryIDs is the expanded
// descendant set of the requested category; empty means no filter.
type ListingFilter struct {
	CategoryIDs []uuid.UUID
	Featured    *bool
	ActiveOnly  bool
	Limit       int
	Offset      int
}

// List returns listings matching the filter with a total row count for
// pagination, newest first.
func (s *ListingStore) List(f ListingFilter) ([]models.Listing, int, error) {
	where, args := f.clauses()

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM listings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	query := `SELECT ` + listingColumns + ` FROM listings` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var items []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan listing: %w", err)
		}
		items = append(items, *l)
	}
	return items, total, rows.Err()
}

func (f ListingFilter) clauses() (string, []any) {
	var conds []string
	var args []any

	if f.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		conds = append(conds, fmt.Sprintf("featured = $%d", len(args)))
	}
	if len(f.CategoryIDs) > 0 {
		ph := make([]string, 0, len(f.CategoryIDs))
		for _, id := range f.CategoryIDs {
			args = append(args, id)
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, "category_id IN ("+strings.Join(ph, ", ")+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// FindByID retrieves a listing with its linked promotion IDs. Returns
// nil if not found.
func (s *ListingStore) FindByID(id uuid.UUID) (*models.Listing, error) {
	l, err := scanListing(s.db.QueryRow(
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find listing by id: %w", err)
	}

	l.PromotionIDs, err = s.promotionIDs(id)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *ListingStore) promotionIDs(listingID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(
		`SELECT promotion_id FROM listing_promotions WHERE listing_id = $1`, listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing promotions: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan promotion id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts a new listing.
func (s *ListingStore) Create(l *models.Listing) (*models.Listing, error) {
	created, err := scanListing(s.db.QueryRow(`
		INSERT INTO listings (title, title_en, title_mk, description, description_en, description_mk,
			address, address_en, address_mk, open_time, open_time_en, open_time_mk, category_id,
			tags, tags_mk, amenities, amenities_mk, working_hours, working_hours_mk,
			image, image2, image3, image4, image5, image6,
			phone, facebook, instagram, website,
			show_open_status, manual_open, is_active, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)
		RETURNING `+listingColumns,
		l.Title, l.TitleEN, l.TitleMK, l.Description, l.DescriptionEN, l.DescriptionMK,
		l.Address, l.AddressEN, l.AddressMK, l.OpenTime, l.OpenTimeEN, l.OpenTimeMK, l.CategoryID,
		l.Tags, l.TagsMK, l.Amenities, l.AmenitiesMK, l.WorkingHours, l.WorkingHoursMK,
		l.Image, l.Image2, l.Image3, l.Image4, l.Image5, l.Image6,
		l.Phone, l.Facebook, l.Instagram, l.Website,
		l.ShowOpenStatus, l.ManualOpen, l.IsActive, l.Featured,
	))
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return created, nil
}

// Update saves changes to an existing listing. Returns nil if the
// listing does not exist.
func (s *ListingStore) Update(l *models.Listing) (*models.Listing, error) {
	updated, err := scanListing(s.db.QueryRow(`
		UPDATE listings SET
			title = $1, title_en = $2, title_mk = $3,
			description = $4, description_en = $5, description_mk = $6,
			address = $7, address_en = $8, address_mk = $9,
			open_time = $10, open_time_en = $11, open_time_mk = $12, category_id = $13,
			tags = $14, tags_mk = $15, amenities = $16, amenities_mk = $17,
			working_hours = $18, working_hours_mk = $19,
			image = $20, image2 = $21, image3 = $22, image4 = $23, image5 = $24, image6 = $25,
			phone = $26, facebook = $27, instagram = $28, website = $29,
			show_open_status = $30, manual_open = $31, is_active = $32, featured = $33,
			updated_at = NOW()
		WHERE id = $34
		RETURNING `+listingColumns,
		l.Title, l.TitleEN, l.TitleMK, l.Description, l.DescriptionEN, l.DescriptionMK,
		l.Address, l.AddressEN, l.AddressMK, l.OpenTime, l.OpenTimeEN, l.OpenTimeMK, l.CategoryID,
		l.Tags, l.TagsMK, l.Amenities, l.AmenitiesMK, l.WorkingHours, l.WorkingHoursMK,
		l.Image, l.Image2, l.Image3, l.Image4, l.Image5, l.Image6,
		l.Phone, l.Facebook, l.Instagram, l.Website,
		l.ShowOpenStatus, l.ManualOpen, l.IsActive, l.Featured, l.ID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return updated, nil
}

// SetPromotions replaces the listing's linked promotions.
func (s *ListingStore) SetPromotions(listingID uuid.UUID, promotionIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set listing promotions: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM listing_promotions WHERE listing_id = $1`, listingID); err != nil {
		return fmt.Errorf("clear listing promotions: %w", err)
	}
	for _, pid := range promotionIDs {
		if _, err := tx.Exec(
			`INSERT INTO listing_promotions (listing_id, promotion_id) VALUES ($1, $2)`,
			listingID, pid,
		); err != nil {
			return fmt.Errorf("link listing promotion: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes a listing by ID.
func (s *ListingStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}
