// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	"gogevgelija/internal/mailer"
	"gogevgelija/internal/middleware"
	"gogevgelija/internal/models"
	"gogevgelija/internal/store"
)

// Support groups the help & support and collaboration inquiry endpoints.
// New submissions trigger a best-effort mail notification to the admin
// inbox; the mailer may be nil when no API key is configured.
type Support struct {
	support *store.SupportStore
	collab  *store.CollaborationStore
	mail    *mailer.Mailer
	adminTo string
}

// NewSupport creates a new Support handler group.
func NewSupport(support *store.SupportStore, collab *store.CollaborationStore, mail *mailer.Mailer, adminTo string) *Support {
	return &Support{support: support, collab: collab, mail: mail, adminTo: adminTo}
}

// Categories returns the accepted ticket categories.
func (h *Support) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": models.SupportCategories()})
}

// Priorities returns the accepted ticket priorities.
func (h *Support) Priorities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"priorities": models.SupportPriorities()})
}

// CollaborationTypes returns the accepted inquiry types.
func (h *Support) CollaborationTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"types": models.CollaborationTypes()})
}

type supportRequest struct {
	Subject  string `json:"subject" validate:"required,max=300"`
	Message  string `json:"message" validate:"required,max=10000"`
	Category string `json:"category" validate:"omitempty,oneof=general technical content business other"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// Submit files a support ticket for the authenticated user.
func (h *Support) Submit(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req supportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.support.Create(claims.UserID, req.Subject, req.Message,
		models.SupportCategory(req.Category), models.SupportPriority(req.Priority))
	if err != nil {
		slog.Error("create support request failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.notify("New support request: "+ticket.Subject,
		"<p>Category: "+html.EscapeString(string(ticket.Category))+
			" / Priority: "+html.EscapeString(string(ticket.Priority))+"</p>"+
			"<p>"+html.EscapeString(ticket.Message)+"</p>")

	writeJSON(w, http.StatusCreated, ticket)
}

// Mine returns the authenticated user's own tickets.
func (h *Support) Mine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	items, err := h.support.ListForUser(claims.UserID)
	if err != nil {
		slog.Error("list support requests failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.SupportRequest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type collaborationRequest struct {
	BusinessName string `json:"business_name" validate:"required,max=200"`
	ContactName  string `json:"contact_name" validate:"omitempty,max=200"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,max=40"`
	Type         string `json:"type" validate:"omitempty,oneof=business_listing advertising partnership event_promotion other"`
	Message      string `json:"message" validate:"required,max=10000"`
}

// SubmitCollaboration files a partnership inquiry.
func (h *Support) SubmitCollaboration(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req collaborationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inquiry, err := h.collab.Create(claims.UserID, req.BusinessName, req.ContactName,
		req.Email, req.Phone, req.Message, models.CollaborationType(req.Type))
	if err != nil {
		slog.Error("create collaboration request failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.notify("New collaboration inquiry: "+inquiry.BusinessName,
		"<p>Type: "+html.EscapeString(string(inquiry.Type))+"</p>"+
			"<p>"+html.EscapeString(inquiry.Message)+"</p>")

	writeJSON(w, http.StatusCreated, inquiry)
}

// MyCollaborations returns the authenticated user's own inquiries.
func (h *Support) MyCollaborations(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	items, err := h.collab.ListForUser(claims.UserID)
	if err != nil {
		slog.Error("list collaboration requests failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.CollaborationRequest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// notify sends a fire-and-forget admin notification. Failures are
// logged, never surfaced to the submitting user.
func (h *Support) notify(subject, htmlBody string) {
	if h.mail == nil || h.adminTo == "" {
		return
	}
	go func() {
		msg := &mailer.Message{To: []string{h.adminTo}, Subject: subject, HTML: htmlBody}
		if err := h.mail.Send(context.Background(), msg); err != nil {
			slog.Warn("admin notification failed", "subject", subject, "error", err)
		}
	}()
}
