// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CollaborationType classifies an inbound partnership inquiry.
type CollaborationType string

const (
	CollaborationTypeBusiness    CollaborationType = "business_listing"
	CollaborationTypeAdvertising CollaborationType = "advertising"
	CollaborationTypePartnership CollaborationType = "partnership"
	CollaborationTypeEvent       CollaborationType = "event_promotion"
	CollaborationTypeOther       CollaborationType = "other"
)

// CollaborationStatus tracks the review state of an inquiry.
type CollaborationStatus string

const (
	CollaborationStatusNew       CollaborationStatus = "new"
	CollaborationStatusReviewing CollaborationStatus = "reviewing"
	CollaborationStatusAccepted  CollaborationStatus = "accepted"
	CollaborationStatusDeclined  CollaborationStatus = "declined"
)

// CollaborationRequest is a partnership inquiry submitted from the app.
// ReviewDate is set by the store the first time status leaves "new".
type CollaborationRequest struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	BusinessName string              `json:"business_name"`
	ContactName  string              `json:"contact_name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Type         CollaborationType   `json:"type"`
	Message      string              `json:"message"`
	Status       CollaborationStatus `json:"status"`
	AdminNotes   string              `json:"admin_notes"`
	ReviewedBy   *uuid.UUID          `json:"reviewed_by,omitempty"`
	ReviewDate   *time.Time          `json:"review_date,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CollaborationTypes lists the accepted inquiry types for the public
// enum endpoint.
func CollaborationTypes() []CollaborationType {
	return []CollaborationType{
		CollaborationTypeBusiness,
		CollaborationTypeAdvertising,
		CollaborationTypePartnership,
		CollaborationTypeEvent,
		CollaborationTypeOther,
	}
}
