// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"gogevgelija/internal/cache"
	"gogevgelija/internal/middleware"
	"gogevgelija/internal/models"
	"gogevgelija/internal/store"
)

// Owner serves the venue-owner surface: members holding a permission
// grant on a listing may read and edit its bilingual record without
// back-office access. Admins pass the permission check implicitly.
type Owner struct {
	listings    *store.ListingStore
	permissions *store.PermissionStore
	payloads    *cache.PayloadCache
	cacheLog    *store.CacheLogStore
}

// NewOwner creates a new Owner handler group.
func NewOwner(listings *store.ListingStore, permissions *store.PermissionStore, payloads *cache.PayloadCache, cacheLog *store.CacheLogStore) *Owner {
	return &Owner{listings: listings, permissions: permissions, payloads: payloads, cacheLog: cacheLog}
}

// GetListing returns the raw bilingual listing record for editing.
func (h *Owner) GetListing(w http.ResponseWriter, r *http.Request) {
	l, ok := h.authorizedListing(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// ownerPatchRequest carries the subset of listing fields a venue owner
// may change. Taxonomy placement and moderation flags stay admin-only.
type ownerPatchRequest struct {
	Description   *string            `json:"description"`
	DescriptionEN *string            `json:"description_en"`
	DescriptionMK *string            `json:"description_mk"`
	OpenTime      *string            `json:"open_time"`
	OpenTimeEN    *string            `json:"open_time_en"`
	OpenTimeMK    *string            `json:"open_time_mk"`
	Tags          *models.StringList `json:"tags"`
	TagsMK        *models.StringList `json:"tags_mk"`
	Amenities     *models.StringList `json:"amenities"`
	AmenitiesMK   *models.StringList `json:"amenities_mk"`
	WorkingHours  *models.JSONMap    `json:"working_hours"`
	WorkingHrsMK  *models.JSONMap    `json:"working_hours_mk"`
	Phone         *string            `json:"phone" validate:"omitempty,max=40"`
	Facebook      *string            `json:"facebook" validate:"omitempty,max=300"`
	Instagram     *string            `json:"instagram" validate:"omitempty,max=300"`
	Website       *string            `json:"website" validate:"omitempty,max=300"`
	ManualOpen    *bool              `json:"manual_open"`
}

// PatchListing applies a partial update to an owned listing.
func (h *Owner) PatchListing(w http.ResponseWriter, r *http.Request) {
	l, ok := h.authorizedListing(w, r)
	if !ok {
		return
	}

	var req ownerPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&l.Description, req.Description)
	applyString(&l.DescriptionEN, req.DescriptionEN)
	applyString(&l.DescriptionMK, req.DescriptionMK)
	applyString(&l.OpenTime, req.OpenTime)
	applyString(&l.OpenTimeEN, req.OpenTimeEN)
	applyString(&l.OpenTimeMK, req.OpenTimeMK)
	applyString(&l.Phone, req.Phone)
	applyString(&l.Facebook, req.Facebook)
	applyString(&l.Instagram, req.Instagram)
	applyString(&l.Website, req.Website)
	if req.Tags != nil {
		l.Tags = *req.Tags
	}
	if req.TagsMK != nil {
		l.TagsMK = *req.TagsMK
	}
	if req.Amenities != nil {
		l.Amenities = *req.Amenities
	}
	if req.AmenitiesMK != nil {
		l.AmenitiesMK = *req.AmenitiesMK
	}
	if req.WorkingHours != nil {
		l.WorkingHours = *req.WorkingHours
	}
	if req.WorkingHrsMK != nil {
		l.WorkingHoursMK = *req.WorkingHrsMK
	}
	if req.ManualOpen != nil {
		l.ManualOpen = req.ManualOpen
	}

	updated, err := h.listings.Update(l)
	if err != nil {
		slog.Error("owner listing update failed", "error", err, "listing", l.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}

	if h.payloads != nil {
		h.payloads.InvalidateEntity(r.Context(), "listings")
		h.payloads.InvalidateEntity(r.Context(), "categories")
	}
	if h.cacheLog != nil {
		h.cacheLog.Log("listings", updated.ID, "update")
	}
	writeJSON(w, http.StatusOK, updated)
}

// authorizedListing loads the listing and enforces the edit grant.
func (h *Owner) authorizedListing(w http.ResponseWriter, r *http.Request) (*models.Listing, bool) {
	id, ok := urlID(w, r)
	if !ok {
		return nil, false
	}
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	if claims.Role != models.RoleAdmin {
		allowed, err := h.permissions.CanEdit(claims.UserID, id)
		if err != nil {
			slog.Error("permission check failed", "error", err, "user", claims.UserID, "listing", id)
			writeError(w, http.StatusInternalServerError, "internal error")
			return nil, false
		}
		if !allowed {
			writeError(w, http.StatusForbidden, "no edit permission for this listing")
			return nil, false
		}
	}

	l, err := h.listings.FindByID(id)
	if err != nil {
		slog.Error("find listing failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if l == nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return nil, false
	}
	return l, true
}
