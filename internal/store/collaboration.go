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

// CollaborationStore manages partnership inquiries.
type CollaborationStore struct {
	db *sql.DB
}

// NewCollaborationStore returns a new CollaborationStore.
func NewCollaborationStore(db *sql.DB) *CollaborationStore {
	return &CollaborationStore{db: db}
}

const collaborationColumns = `id, user_id, business_name, contact_name, email, phone, type,
	message, status, admin_notes, reviewed_by, review_date, created_at, updated_at`

func scanCollaborationRequest(scanner interface{ Scan(...any) error }) (*models.CollaborationRequest, error) {
	var r models.CollaborationRequest
	err := scanner.Scan(
		&r.ID, &r.UserID, &r.BusinessName, &r.ContactName, &r.Email, &r.Phone, &r.Type,
		&r.Message, &r.Status, &r.AdminNotes, &r.ReviewedBy, &r.ReviewDate, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create files a new inquiry. Type falls back to other; status always
// starts new.
func (s *CollaborationStore) Create(userID uuid.UUID, businessName, contactName, email, phone, message string, reqType models.CollaborationType) (*models.CollaborationRequest, error) {
	if reqType == "" {
		reqType = models.CollaborationTypeOther
	}

	r, err := scanCollaborationRequest(s.db.QueryRow(`
		INSERT INTO collaboration_requests (user_id, business_name, contact_name, email, phone, type, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+collaborationColumns,
		userID, businessName, contactName, email, phone, reqType, message,
	))
	if err != nil {
		return nil, fmt.Errorf("create collaboration request: %w", err)
	}
	return r, nil
}

// FindByID retrieves an inquiry by UUID. Returns nil if not found.
func (s *CollaborationStore) FindByID(id uuid.UUID) (*models.CollaborationRequest, error) {
	r, err := scanCollaborationRequest(s.db.QueryRow(
		`SELECT `+collaborationColumns+` FROM collaboration_requests WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collaboration request: %w", err)
	}
	return r, nil
}

// ListForUser returns a user's own inquiries, newest first.
func (s *CollaborationStore) ListForUser(userID uuid.UUID) ([]models.CollaborationRequest, error) {
	rows, err := s.db.Query(`
		SELECT `+collaborationColumns+` FROM collaboration_requests
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list collaboration requests: %w", err)
	}
	defer rows.Close()
	return collectCollaborationRequests(rows)
}

// ListAll returns every inquiry for the back-office, optionally filtered
// by status, newest first.
func (s *CollaborationStore) ListAll(status models.CollaborationStatus) ([]models.CollaborationRequest, error) {
	query := `SELECT ` + collaborationColumns + ` FROM collaboration_requests`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collaboration requests: %w", err)
	}
	defer rows.Close()
	return collectCollaborationRequests(rows)
}

func collectCollaborationRequests(rows *sql.Rows) ([]models.CollaborationRequest, error) {
	var items []models.CollaborationRequest
	for rows.Next() {
		r, err := scanCollaborationRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collaboration request: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// Review records a triage decision. review_date is stamped the first
// time status leaves new and kept on later updates.
func (s *CollaborationStore) Review(id uuid.UUID, status models.CollaborationStatus, notes string, reviewedBy uuid.UUID) (*models.CollaborationRequest, error) {
	r, err := scanCollaborationRequest(s.db.QueryRow(`
		UPDATE collaboration_requests SET
			status = $1,
			admin_notes = $2,
			reviewed_by = $3,
			review_date = CASE
				WHEN $1 <> 'new' AND review_date IS NULL THEN NOW()
				ELSE review_date
			END,
			updated_at = NOW()
		WHERE id = $4
		RETURNING `+collaborationColumns,
		status, notes, reviewedBy, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("review collaboration request: %w", err)
	}
	return r, nil
}

// Delete removes an inquiry by ID.
func (s *CollaborationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM collaboration_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collaboration request: %w", err)
	}
	return nil
}
