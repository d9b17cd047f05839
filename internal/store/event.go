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

// EventStore manages events and their join registrations.
type EventStore struct {
	db *sql.DB
}

// NewEventStore returns a new EventStore.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventColumns = `id, title, title_en, title_mk, description, description_en, description_mk,
	location, location_en, location_mk, entry_price, entry_price_en, entry_price_mk,
	age_limit, age_limit_en, age_limit_mk, date_time, category_id,
	expectations, expectations_mk, image, join_count, is_active, featured, created_at, updated_at`

// scanEvent scans a row into an Event struct.
func scanEvent(scanner interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	err := scanner.Scan(
		&e.ID, &e.Title, &e.TitleEN, &e.TitleMK,
		&e.Description, &e.DescriptionEN, &e.DescriptionMK,
		&e.Location, &e.LocationEN, &e.LocationMK,
		&e.EntryPrice, &e.EntryPriceEN, &e.EntryPriceMK,
		&e.AgeLimit, &e.AgeLimitEN, &e.AgeLimitMK,
		&e.DateTime, &e.CategoryID,
		&e.Expectations, &e.ExpectationsMK,
		&e.Image, &e.JoinCount, &e.IsActive, &e.Featured,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EventFilter narrows List results, same shape as ListingFilter.
type EventFilter struct {
	CategoryIDs []uuid.UUID
	Featured    *bool
	ActiveOnly  bool
	Limit       int
	Offset      int
}

// List returns events matching the filter with a total count, newest first.
func (s *EventStore) List(f EventFilter) ([]models.Event, int, error) {
	where, args := f.clauses()

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM events`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := `SELECT ` + eventColumns + ` FROM events` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var items []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, *e)
	}
	return items, total, rows.Err()
}

func (f EventFilter) clauses() (string, []any) {
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

// FindByID retrieves an event with its linked listing and promotion IDs.
// Returns nil if not found.
func (s *EventStore) FindByID(id uuid.UUID) (*models.Event, error) {
	e, err := scanEvent(s.db.QueryRow(
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find event by id: %w", err)
	}

	if e.ListingIDs, err = s.linkedIDs(`SELECT listing_id FROM event_listings WHERE event_id = $1`, id); err != nil {
		return nil, err
	}
	if e.PromotionIDs, err = s.linkedIDs(`SELECT promotion_id FROM event_promotions WHERE event_id = $1`, id); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventStore) linkedIDs(query string, eventID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("event links: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan linked id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts a new event.
func (s *EventStore) Create(e *models.Event) (*models.Event, error) {
	created, err := scanEvent(s.db.QueryRow(`
		INSERT INTO events (title, title_en, title_mk, description, description_en, description_mk,
			location, location_en, location_mk, entry_price, entry_price_en, entry_price_mk,
			age_limit, age_limit_en, age_limit_mk, date_time, category_id,
			expectations, expectations_mk, image, is_active, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22)
		RETURNING `+eventColumns,
		e.Title, e.TitleEN, e.TitleMK, e.Description, e.DescriptionEN, e.DescriptionMK,
		e.Location, e.LocationEN, e.LocationMK, e.EntryPrice, e.EntryPriceEN, e.EntryPriceMK,
		e.AgeLimit, e.AgeLimitEN, e.AgeLimitMK, e.DateTime, e.CategoryID,
		e.Expectations, e.ExpectationsMK, e.Image, e.IsActive, e.Featured,
	))
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

// Update saves changes to an existing event. Returns nil if the event
// does not exist. join_count is never written here; Join and Unjoin own it.
func (s *EventStore) Update(e *models.Event) (*models.Event, error) {
	updated, err := scanEvent(s.db.QueryRow(`
		UPDATE events SET
			title = $1, title_en = $2, title_mk = $3,
			description = $4, description_en = $5, description_mk = $6,
			location = $7, location_en = $8, location_mk = $9,
			entry_price = $10, entry_price_en = $11, entry_price_mk = $12,
			age_limit = $13, age_limit_en = $14, age_limit_mk = $15,
			date_time = $16, category_id = $17,
			expectations = $18, expectations_mk = $19, image = $20,
			is_active = $21, featured = $22, updated_at = NOW()
		WHERE id = $23
		RETURNING `+eventColumns,
		e.Title, e.TitleEN, e.TitleMK, e.Description, e.DescriptionEN, e.DescriptionMK,
		e.Location, e.LocationEN, e.LocationMK, e.EntryPrice, e.EntryPriceEN, e.EntryPriceMK,
		e.AgeLimit, e.AgeLimitEN, e.AgeLimitMK, e.DateTime, e.CategoryID,
		e.Expectations, e.ExpectationsMK, e.Image, e.IsActive, e.Featured, e.ID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// SetListings replaces the event's linked listings.
func (s *EventStore) SetListings(eventID uuid.UUID, listingIDs []uuid.UUID) error {
	return s.replaceLinks(eventID, "event_listings", "listing_id", listingIDs)
}

// SetPromotions replaces the event's linked promotions.
func (s *EventStore) SetPromotions(eventID uuid.UUID, promotionIDs []uuid.UUID) error {
	return s.replaceLinks(eventID, "event_promotions", "promotion_id", promotionIDs)
}

func (s *EventStore) replaceLinks(eventID uuid.UUID, table, column string, ids []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set event links: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM `+table+` WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("clear event links: %w", err)
	}
	for _, id := range ids {
		if _, err := tx.Exec(
			`INSERT INTO `+table+` (event_id, `+column+`) VALUES ($1, $2)`,
			eventID, id,
		); err != nil {
			return fmt.Errorf("link event %s: %w", column, err)
		}
	}
	return tx.Commit()
}

// Join registers a user's attendance and returns the new join count.
// Joining twice is a no-op; the count only moves on a fresh registration.
func (s *EventStore) Join(eventID, userID uuid.UUID) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("join event: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO event_joins (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`, eventID, userID)
	if err != nil {
		return 0, fmt.Errorf("join event: %w", err)
	}

	var count int
	inserted, _ := res.RowsAffected()
	if inserted > 0 {
		err = tx.QueryRow(`
			UPDATE events SET join_count = join_count + 1 WHERE id = $1
			RETURNING join_count
		`, eventID).Scan(&count)
	} else {
		err = tx.QueryRow(`SELECT join_count FROM events WHERE id = $1`, eventID).Scan(&count)
	}
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("event %s not found", eventID)
	}
	if err != nil {
		return 0, fmt.Errorf("update join count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("join event commit: %w", err)
	}
	return count, nil
}

// Unjoin removes a user's attendance and returns the new join count.
// Unjoining an event never joined is a no-op.
func (s *EventStore) Unjoin(eventID, userID uuid.UUID) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("unjoin event: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM event_joins WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return 0, fmt.Errorf("unjoin event: %w", err)
	}

	var count int
	deleted, _ := res.RowsAffected()
	if deleted > 0 {
		err = tx.QueryRow(`
			UPDATE events SET join_count = GREATEST(join_count - 1, 0) WHERE id = $1
			RETURNING join_count
		`, eventID).Scan(&count)
	} else {
		err = tx.QueryRow(`SELECT join_count FROM events WHERE id = $1`, eventID).Scan(&count)
	}
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("event %s not found", eventID)
	}
	if err != nil {
		return 0, fmt.Errorf("update join count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("unjoin event commit: %w", err)
	}
	return count, nil
}

// HasJoined reports whether a user is registered for an event.
func (s *EventStore) HasJoined(eventID, userID uuid.UUID) (bool, error) {
	var joined bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM event_joins WHERE event_id = $1 AND user_id = $2)
	`, eventID, userID).Scan(&joined)
	if err != nil {
		return false, fmt.Errorf("check event join: %w", err)
	}
	return joined, nil
}

// JoinedEventIDs returns the IDs of all events a user has joined.
func (s *EventStore) JoinedEventIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(`
		SELECT event_id FROM event_joins WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("joined events: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan joined event: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes an event by ID.
func (s *EventStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
