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

// PermissionStore manages per-listing edit grants for members.
type PermissionStore struct {
	db *sql.DB
}

// NewPermissionStore returns a new PermissionStore.
func NewPermissionStore(db *sql.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

const permissionColumns = `id, user_id, listing_id, can_edit, granted_by, created_at, updated_at`

func scanPermission(scanner interface{ Scan(...any) error }) (*models.UserPermission, error) {
	var p models.UserPermission
	err := scanner.Scan(&p.ID, &p.UserID, &p.ListingID, &p.CanEdit, &p.GrantedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListForUser returns all grants held by a user.
func (s *PermissionStore) ListForUser(userID uuid.UUID) ([]models.UserPermission, error) {
	return s.list(`SELECT `+permissionColumns+` FROM user_permissions WHERE user_id = $1 ORDER BY created_at`, userID)
}

// ListForListing returns all grants on a listing.
func (s *PermissionStore) ListForListing(listingID uuid.UUID) ([]models.UserPermission, error) {
	return s.list(`SELECT `+permissionColumns+` FROM user_permissions WHERE listing_id = $1 ORDER BY created_at`, listingID)
}

func (s *PermissionStore) list(query string, arg any) ([]models.UserPermission, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var items []models.UserPermission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Grant gives a user edit access to a listing. Re-granting refreshes the
// can_edit flag and the granting admin.
func (s *PermissionStore) Grant(userID, listingID, grantedBy uuid.UUID, canEdit bool) (*models.UserPermission, error) {
	p, err := scanPermission(s.db.QueryRow(`
		INSERT INTO user_permissions (user_id, listing_id, can_edit, granted_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, listing_id)
		DO UPDATE SET can_edit = EXCLUDED.can_edit, granted_by = EXCLUDED.granted_by, updated_at = NOW()
		RETURNING `+permissionColumns,
		userID, listingID, canEdit, grantedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("grant permission: %w", err)
	}
	return p, nil
}

// Revoke removes a user's grant on a listing.
func (s *PermissionStore) Revoke(userID, listingID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM user_permissions WHERE user_id = $1 AND listing_id = $2
	`, userID, listingID)
	if err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	return nil
}

// CanEdit reports whether a user may edit a listing through a grant.
// Admins bypass this check at the handler level.
func (s *PermissionStore) CanEdit(userID, listingID uuid.UUID) (bool, error) {
	var allowed bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM user_permissions
			WHERE user_id = $1 AND listing_id = $2 AND can_edit
		)
	`, userID, listingID).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}
	return allowed, nil
}
