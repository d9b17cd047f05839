// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SupportCategory classifies a help request.
type SupportCategory string

const (
	SupportCategoryGeneral   SupportCategory = "general"
	SupportCategoryTechnical SupportCategory = "technical"
	SupportCategoryContent   SupportCategory = "content"
	SupportCategoryBusiness  SupportCategory = "business"
	SupportCategoryOther     SupportCategory = "other"
)

// SupportPriority ranks a help request.
type SupportPriority string

const (
	SupportPriorityLow    SupportPriority = "low"
	SupportPriorityMedium SupportPriority = "medium"
	SupportPriorityHigh   SupportPriority = "high"
	SupportPriorityUrgent SupportPriority = "urgent"
)

// SupportStatus tracks the triage state of a help request.
type SupportStatus string

const (
	SupportStatusOpen       SupportStatus = "open"
	SupportStatusInProgress SupportStatus = "in_progress"
	SupportStatusResolved   SupportStatus = "resolved"
	SupportStatusClosed     SupportStatus = "closed"
)

// SupportRequest is a help & support ticket filed from the app.
// ResolvedAt is set by the store when status transitions to resolved.
type SupportRequest struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Subject       string          `json:"subject"`
	Message       string          `json:"message"`
	Category      SupportCategory `json:"category"`
	Priority      SupportPriority `json:"priority"`
	Status        SupportStatus   `json:"status"`
	AdminResponse string          `json:"admin_response"`
	RespondedBy   *uuid.UUID      `json:"responded_by,omitempty"`
	ResolvedAt    *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SupportCategories lists the accepted ticket categories for the
// public enum endpoint.
func SupportCategories() []SupportCategory {
	return []SupportCategory{
		SupportCategoryGeneral,
		SupportCategoryTechnical,
		SupportCategoryContent,
		SupportCategoryBusiness,
		SupportCategoryOther,
	}
}

// SupportPriorities lists the accepted ticket priorities.
func SupportPriorities() []SupportPriority {
	return []SupportPriority{
		SupportPriorityLow,
		SupportPriorityMedium,
		SupportPriorityHigh,
		SupportPriorityUrgent,
	}
}
