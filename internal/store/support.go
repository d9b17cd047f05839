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

// SupportStore manages help & support tickets.
type SupportStore struct {
	db *sql.DB
}

// NewSupportStore returns a new SupportStore.
func NewSupportStore(db *sql.DB) *SupportStore {
	return &SupportStore{db: db}
}

const supportColumns = `id, user_id, subject, message, category, priority, status,
	admin_response, responded_by, resolved_at, created_at, updated_at`

func scanSupportRequest(scanner interface{ Scan(...any) error }) (*models.SupportRequest, error) {
	var r models.SupportRequest
	err := scanner.Scan(
		&r.ID, &r.UserID, &r.Subject, &r.Message, &r.Category, &r.Priority, &r.Status,
		&r.AdminResponse, &r.RespondedBy, &r.ResolvedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create files a new ticket. Category and priority fall back to their
// defaults when empty; status always starts open.
func (s *SupportStore) Create(userID uuid.UUID, subject, message string, category models.SupportCategory, priority models.SupportPriority) (*models.SupportRequest, error) {
	if category == "" {
		category = models.SupportCategoryGeneral
	}
	if priority == "" {
		priority = models.SupportPriorityMedium
	}

	r, err := scanSupportRequest(s.db.QueryRow(`
		INSERT INTO support_requests (user_id, subject, message, category, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+supportColumns,
		userID, subject, message, category, priority,
	))
	if err != nil {
		return nil, fmt.Errorf("create support request: %w", err)
	}
	return r, nil
}

// FindByID retrieves a ticket by UUID. Returns nil if not found.
func (s *SupportStore) FindByID(id uuid.UUID) (*models.SupportRequest, error) {
	r, err := scanSupportRequest(s.db.QueryRow(
		`SELECT `+supportColumns+` FROM support_requests WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find support request: %w", err)
	}
	return r, nil
}

// ListForUser returns a user's own tickets, newest first.
func (s *SupportStore) ListForUser(userID uuid.UUID) ([]models.SupportRequest, error) {
	rows, err := s.db.Query(`
		SELECT `+supportColumns+` FROM support_requests
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list support requests: %w", err)
	}
	defer rows.Close()
	return collectSupportRequests(rows)
}

// ListAll returns every ticket for the back-office, optionally filtered
// by status, newest first.
func (s *SupportStore) ListAll(status models.SupportStatus) ([]models.SupportRequest, error) {
	query := `SELECT ` + supportColumns + ` FROM support_requests`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list support requests: %w", err)
	}
	defer rows.Close()
	return collectSupportRequests(rows)
}

func collectSupportRequests(rows *sql.Rows) ([]models.SupportRequest, error) {
	var items []models.SupportRequest
	for rows.Next() {
		r, err := scanSupportRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan support request: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// Respond records a triage update. resolved_at is stamped the moment
// status becomes resolved and cleared if the ticket is reopened.
func (s *SupportStore) Respond(id uuid.UUID, status models.SupportStatus, response string, respondedBy uuid.UUID) (*models.SupportRequest, error) {
	r, err := scanSupportRequest(s.db.QueryRow(`
		UPDATE support_requests SET
			status = $1,
			admin_response = $2,
			responded_by = $3,
			resolved_at = CASE
				WHEN $1 = 'resolved' AND resolved_at IS NULL THEN NOW()
				WHEN $1 <> 'resolved' THEN NULL
				ELSE resolved_at
			END,
			updated_at = NOW()
		WHERE id = $4
		RETURNING `+supportColumns,
		status, response, respondedBy, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("respond to support request: %w", err)
	}
	return r, nil
}

// Delete removes a ticket by ID.
func (s *SupportStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM support_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete support request: %w", err)
	}
	return nil
}
