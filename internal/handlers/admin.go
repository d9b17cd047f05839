// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"gogevgelija/internal/auth"
	"gogevgelija/internal/cache"
	"gogevgelija/internal/middleware"
	"gogevgelija/internal/models"
	"gogevgelija/internal/storage"
	"gogevgelija/internal/store"
)

// totpIssuer labels enrolled accounts in authenticator apps.
const totpIssuer = "GoGevgelija"

// Admin groups the back-office endpoints. All routes behind this group
// require an admin token with a completed TOTP challenge, except the 2FA
// enrollment endpoints themselves.
type Admin struct {
	users       *store.UserStore
	categories  *store.CategoryStore
	listings    *store.ListingStore
	events      *store.EventStore
	promotions  *store.PromotionStore
	blogs       *store.BlogStore
	permissions *store.PermissionStore
	support     *store.SupportStore
	collab      *store.CollaborationStore
	media       *store.MediaStore
	cacheLog    *store.CacheLogStore
	tokens      *auth.TokenManager
	payloads    *cache.PayloadCache
	storage     *storage.Client
}

// NewAdmin creates a new Admin handler group. storage may be nil when
// object storage is not configured; media endpoints then return 503.
func NewAdmin(users *store.UserStore, categories *store.CategoryStore, listings *store.ListingStore, events *store.EventStore, promotions *store.PromotionStore, blogs *store.BlogStore, permissions *store.PermissionStore, support *store.SupportStore, collab *store.CollaborationStore, media *store.MediaStore, cacheLog *store.CacheLogStore, tokens *auth.TokenManager, payloads *cache.PayloadCache, storageClient *storage.Client) *Admin {
	return &Admin{
		users:       users,
		categories:  categories,
		listings:    listings,
		events:      events,
		promotions:  promotions,
		blogs:       blogs,
		permissions: permissions,
		support:     support,
		collab:      collab,
		media:       media,
		cacheLog:    cacheLog,
		tokens:      tokens,
		payloads:    payloads,
		storage:     storageClient,
	}
}

// invalidate drops the cached public payloads touched by a write and
// records the event for audit.
func (a *Admin) invalidate(r *http.Request, entity string, id uuid.UUID, action string) {
	if a.payloads != nil {
		for _, ns := range invalidationTargets(entity) {
			a.payloads.InvalidateEntity(r.Context(), ns)
		}
	}
	if a.cacheLog != nil {
		a.cacheLog.Log(entity, id, action)
	}
}

// invalidationTargets returns the payload namespaces a write to an
// entity makes stale. Category payloads embed item counts, so content
// writes spill over to categories; category writes change descendant
// sets baked into category-filtered list payloads, so they spill over
// to listings and events.
func invalidationTargets(entity string) []string {
	switch entity {
	case "listings", "events":
		return []string{entity, "categories"}
	case "categories":
		return []string{"categories", "listings", "events"}
	default:
		return []string{entity}
	}
}

// --- 2FA enrollment ---

// TwoFASetup generates a TOTP secret for the authenticated admin and
// returns it with a QR code PNG (base64) for authenticator apps.
func (a *Admin) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	user, err := a.users.FindByID(claims.UserID)
	if err != nil || user == nil {
		slog.Error("2fa setup lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user.TOTPEnabled {
		writeError(w, http.StatusConflict, "two-factor authentication already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := a.users.SetTOTPSecret(user.ID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret":  key.Secret(),
		"qr_code": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type twoFAVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// TwoFAVerify validates a TOTP code and returns a token pair with the
// 2FA flag set. First-time verification completes enrollment.
func (a *Admin) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req twoFAVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByID(claims.UserID)
	if err != nil || user == nil {
		slog.Error("2fa verify lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusConflict, "two-factor authentication not set up")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	pair, err := a.tokens.IssuePair(user, true)
	if err != nil {
		slog.Error("issue tokens failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokens": pair})
}

// --- Users ---

// Users lists all accounts.
func (a *Admin) Users(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List()
	if err != nil {
		slog.Error("list users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": users})
}

// ResetUser2FA clears another admin's TOTP enrollment.
func (a *Admin) ResetUser2FA(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := a.users.ResetTOTP(id); err != nil {
		slog.Error("reset totp failed", "error", err, "user", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// --- Categories ---

// Categories lists all categories including inactive ones, flat.
func (a *Admin) Categories(w http.ResponseWriter, r *http.Request) {
	items, err := a.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// CreateCategory inserts a category; slug and level are derived server-side.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if !decodeBody(w, r, &c) {
		return
	}
	created, err := a.categories.Create(&c)
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.invalidate(r, "categories", created.ID, "create")
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCategory saves a category; reparenting recomputes subtree levels.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var c models.Category
	if !decodeBody(w, r, &c) {
		return
	}
	c.ID = id
	updated, err := a.categories.Update(&c)
	if err != nil {
		slog.Error("update category failed", "error", err, "id", id)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	a.invalidate(r, "categories", id, "update")
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory removes a category; its subtree cascades.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := a.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	a.invalidate(r, "categories", id, "delete")
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- Listings ---

// Listings lists all listings, inactive included.
func (a *Admin) Listings(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := a.listings.List(store.ListingFilter{Limit: limit, Offset: offset})
	if err != nil {
		slog.Error("list listings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, paged(r, items, total))
}

// Listing returns one raw listing record.
func (a *Admin) Listing(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	l, err := a.listings.FindByID(id)
	if err != nil {
		slog.Error("find listing failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if l == nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

type listingWriteRequest struct {
	models.Listing
	PromotionIDs []uuid.UUID `json:"promotion_ids"`
}

// CreateListing inserts a listing and links its promotions.
func (a *Admin) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req listingWriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := a.listings.Create(&req.Listing)
	if err != nil {
		slog.Error("create listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if len(req.PromotionIDs) > 0 {
		if err := a.listings.SetPromotions(created.ID, req.PromotionIDs); err != nil {
			slog.Error("link listing promotions failed", "error", err, "id", created.ID)
		}
		created.PromotionIDs = req.PromotionIDs
	}
	a.invalidate(r, "listings", created.ID, "create")
	writeJSON(w, http.StatusCreated, created)
}

// UpdateListing saves a listing and replaces its promotion links.
func (a *Admin) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req listingWriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Listing.ID = id
	updated, err := a.listings.Update(&req.Listing)
	if err != nil {
		slog.Error("update listing failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	if err := a.listings.SetPromotions(id, req.PromotionIDs); err != nil {
		slog.Error("link listing promotions failed", "error", err, "id", id)
	}
	updated.PromotionIDs = req.PromotionIDs
	a.invalidate(r, "listings", id, "update")
	writeJSON(w, http.StatusOK, updated)
}

// DeleteListing removes a listing.
func (a *Admin) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := a.listings.Delete(id); err != nil {
		slog.Error("delete listing failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	a.invalidate(r, "listings", id, "delete")
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- Events ---

// Events lists all events, inactive included.
func (a *Admin) Events(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := a.events.List(store.EventFilter{Limit: limit, Offset: offset})
	if err != nil {
		slog.Error("list events failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, paged(r, items, total))
}

// Event returns one raw event record with its link IDs.
func (a *Admin) Event(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	e, err := a.events.FindByID(id)
	if err != nil {
		slog.Error("find event failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type eventWriteRequest struct {
	models.Event
	ListingIDs   []uuid.UUID `json:"listing_ids"`
	PromotionIDs []uuid.UUID `json:"promotion_ids"`
}

// CreateEvent inserts an event and links its listings and promotions.
func (a *Admin) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventWriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := a.events.Create(&req.Event)
	if err != nil {
		slog.Error("create event failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	a.linkEvent(created.ID, req.ListingIDs, req.PromotionIDs)
	created.ListingIDs, created.PromotionIDs = req.ListingIDs, req.PromotionIDs
	a.invalidate(r, "events", created.ID, "create")
	writeJSON(w, http.StatusCreated, created)
}

// UpdateEvent saves an event and replaces its links.
func (a *Admin) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req eventWriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Event.ID = id
	updated, err := a.events.Update(&req.Event)
	if err != nil {
		slog.Error("update event failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	a.linkEvent(id, req.ListingIDs, req.PromotionIDs)
	updated.ListingIDs, updated.PromotionIDs = req.ListingIDs, req.PromotionIDs
	a.invalidate(r, "events", id, "update")
	writeJSON(w, http.StatusOK, updated)
}

func (a *Admin) linkEvent(id uuid.UUID, listingIDs, promotionIDs []uuid.UUID) {
	if err := a.events.SetListings(id, listingIDs); err != nil {
		slog.Error("link event listings failed", "error", err, "id", id)
	}
	if err := a.events.SetPromotions(id, promotionIDs); err != nil {
		slog.Error("link event promotions failed", "error", err, "id", id)
	}
}

// DeleteEvent removes an event; joins and links cascade.
func (a *Admin) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := a.events.Delete(id); err != nil {
		slog.Error("delete event failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	a.invalidate(r, "events", id, "delete")
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- Promotions ---

// Promotions lists all promotions, expired included.
func (a *Admin) Promotions(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := a.promotions.List(store.PromotionFilter{Limit: limit, Offset: offset})
	if err != nil {
		slog.Error("list promotions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, paged(r, items, total))
}

// Promotion returns one raw promotion record.
func (a *Admin) Promotion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	p, err := a.promotions.FindByID(id)
	if err != nil {
		slog.Error("find promotion failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "promotion not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreatePromotion inserts a promotion.
func (a *Admin) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var p models.Promotion
	if !decodeBody(w, r, &p) {
		return
	}
	created, err := a.promotions.Create(&p)
	if err != nil {
		slog.Error("create promotion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	a.invalidate(r, "promotions", created.ID, "create")
	writeJSON(w, http.StatusCreated, created)
}

// UpdatePromotion saves a promotion.
func (a *Admin) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var p models.Promotion
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = id
	updated, err := a.promotions.Update(&p)
	if err != nil {
		slog.Error("update promotion failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "promotion not found")
		return
	}
	a.invalidate(r, "promotions", id, "update")
	writeJSON(w, http.StatusOK, updated)
}

// DeletePromotion removes a promotion; link rows cascade.
func (a *Admin) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := a.promotions.Delete(id); err != nil {
		slog.Error("delete promotion failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	a.invalidate(r, "promotions", id, "delete")
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- Blogs ---

// Blogs lists all blog posts, drafts included.
func (a *Admin) Blogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := a.blogs.List(store.BlogFilter{Limit: limit, Offset: offset})
	if err != nil {
		slog.Error("list blogs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, paged(r, items, total))
}

// Blog returns one raw blog record.
func (a *Admin) Blog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	b, err := a.blogs.FindByID(id)
	if err != nil {
		slog.Error("find blog failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CreateBlog inserts a blog post.
func (a *Admin) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var b models.Blog
	if !decodeBody(w, r, &b) {
		return
	}
	created, err := a.blogs.Create(&b)
	if err != nil {
		slog.Error("create blog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	a.invalidate(r, "blogs", created.ID, "create")
	writeJSON(w, http.StatusCreated, created)
}

// UpdateBlog saves a blog post.
func (a *Admin) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var b models.Blog
	if !decodeBody(w, r, &b) {
		return
	}
	b.ID = id
	updated, err := a.blogs.Update(&b)
	if err != nil {
		slog.Error("update blog failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}
	a.invalidate(r, "blogs", id, "update")
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBlog removes a blog post.
func (a *Admin) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := a.blogs.Delete(id); err != nil {
		slog.Error("delete blog failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	a.invalidate(r, "blogs", id, "delete")
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- Permissions ---

// Permissions lists grants filtered by ?by_user= or ?by_listing=.
func (a *Admin) Permissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var items []models.UserPermission
	var err error
	switch {
	case q.Get("by_user") != "":
		var userID uuid.UUID
		if userID, err = uuid.Parse(q.Get("by_user")); err != nil {
			writeError(w, http.StatusBadRequest, "invalid by_user")
			return
		}
		items, err = a.permissions.ListForUser(userID)
	case q.Get("by_listing") != "":
		var listingID uuid.UUID
		if listingID, err = uuid.Parse(q.Get("by_listing")); err != nil {
			writeError(w, http.StatusBadRequest, "invalid by_listing")
			return
		}
		items, err = a.permissions.ListForListing(listingID)
	default:
		writeError(w, http.StatusBadRequest, "by_user or by_listing filter required")
		return
	}
	if err != nil {
		slog.Error("list permissions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.UserPermission{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type grantRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	ListingID uuid.UUID `json:"listing_id" validate:"required"`
	CanEdit   *bool     `json:"can_edit"`
}

// GrantPermission gives a member edit access to a listing.
func (a *Admin) GrantPermission(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req grantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	canEdit := true
	if req.CanEdit != nil {
		canEdit = *req.CanEdit
	}

	grant, err := a.permissions.Grant(req.UserID, req.ListingID, claims.UserID, canEdit)
	if err != nil {
		slog.Error("grant permission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, grant)
}

type revokeRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	ListingID uuid.UUID `json:"listing_id" validate:"required"`
}

// RevokePermission removes a member's edit access.
func (a *Admin) RevokePermission(w http.ResponseWriter, r *http.Request) {
	var req revokeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.permissions.Revoke(req.UserID, req.ListingID); err != nil {
		slog.Error("revoke permission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"revoked": true})
}

// --- Support triage ---

// SupportRequests lists tickets, optionally filtered by ?status=.
func (a *Admin) SupportRequests(w http.ResponseWriter, r *http.Request) {
	items, err := a.support.ListAll(models.SupportStatus(r.URL.Query().Get("status")))
	if err != nil {
		slog.Error("list support requests failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.SupportRequest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type supportRespondRequest struct {
	Status   string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
	Response string `json:"response" validate:"omitempty,max=10000"`
}

// RespondSupport updates a ticket's status and response.
func (a *Admin) RespondSupport(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())
	var req supportRespondRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := a.support.Respond(id, models.SupportStatus(req.Status), req.Response, claims.UserID)
	if err != nil {
		slog.Error("respond support failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if ticket == nil {
		writeError(w, http.StatusNotFound, "support request not found")
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// CollaborationRequests lists inquiries, optionally filtered by ?status=.
func (a *Admin) CollaborationRequests(w http.ResponseWriter, r *http.Request) {
	items, err := a.collab.ListAll(models.CollaborationStatus(r.URL.Query().Get("status")))
	if err != nil {
		slog.Error("list collaboration requests failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.CollaborationRequest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type collaborationReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=new reviewing accepted declined"`
	Notes  string `json:"notes" validate:"omitempty,max=10000"`
}

// ReviewCollaboration records a triage decision on an inquiry.
func (a *Admin) ReviewCollaboration(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())
	var req collaborationReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inquiry, err := a.collab.Review(id, models.CollaborationStatus(req.Status), req.Notes, claims.UserID)
	if err != nil {
		slog.Error("review collaboration failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if inquiry == nil {
		writeError(w, http.StatusNotFound, "collaboration request not found")
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}

// decodeBody decodes a JSON body without struct-tag validation, for
// entity payloads whose constraints live in the store layer.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
