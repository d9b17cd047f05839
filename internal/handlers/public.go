// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"gogevgelija/internal/cache"
	"gogevgelija/internal/hours"
	"gogevgelija/internal/middleware"
	"gogevgelija/internal/models"
	"gogevgelija/internal/store"
)

// Public groups the read-only content endpoints consumed by the mobile
// app. Hot list payloads are cached in Valkey per language and filter
// set; the cache may be nil in tests.
type Public struct {
	categories *store.CategoryStore
	listings   *store.ListingStore
	events     *store.EventStore
	promotions *store.PromotionStore
	blogs      *store.BlogStore
	hours      *hours.Evaluator
	payloads   *cache.PayloadCache
}

// NewPublic creates a new Public handler group.
func NewPublic(categories *store.CategoryStore, listings *store.ListingStore, events *store.EventStore, promotions *store.PromotionStore, blogs *store.BlogStore, eval *hours.Evaluator, payloads *cache.PayloadCache) *Public {
	return &Public{
		categories: categories,
		listings:   listings,
		events:     events,
		promotions: promotions,
		blogs:      blogs,
		hours:      eval,
		payloads:   payloads,
	}
}

// Health reports liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// cached serves a payload-cache hit or invokes build and stores the
// result. build returns the response value to encode.
func (p *Public) cached(w http.ResponseWriter, r *http.Request, key string, build func() (any, error)) {
	ctx := r.Context()
	if p.payloads != nil {
		if payload, ok := p.payloads.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	data, err := build()
	if err != nil {
		slog.Error("build payload failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("encode payload failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if p.payloads != nil {
		p.payloads.Set(ctx, key, payload)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// Categories returns the active category tree with aggregated item counts.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromCtx(r.Context())

	p.cached(w, r, cache.Key("categories", string(lang)), func() (any, error) {
		tree, err := p.categories.Tree()
		if err != nil {
			return nil, err
		}
		direct, err := p.categories.DirectItemCounts()
		if err != nil {
			return nil, err
		}

		var views []categoryView
		for _, root := range tree.Roots() {
			if !root.IsActive {
				continue
			}
			views = append(views, categoryPayload(tree, direct, root, lang, true))
		}
		return map[string]any{"items": views}, nil
	})
}

// Category returns a single category with its subtree.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	lang := middleware.LanguageFromCtx(r.Context())

	tree, err := p.categories.Tree()
	if err != nil {
		slog.Error("load category tree failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	c := tree.Get(id)
	if c == nil || !c.IsActive {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	direct, err := p.categories.DirectItemCounts()
	if err != nil {
		slog.Error("count category items failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, categoryPayload(tree, direct, c, lang, true))
}

// CategoryItems returns the listings and events attached to a category
// or any of its descendants.
func (p *Public) CategoryItems(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	lang := middleware.LanguageFromCtx(r.Context())
	limit, offset := pagination(r)

	tree, err := p.categories.Tree()
	if err != nil {
		slog.Error("load category tree failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	c := tree.Get(id)
	if c == nil || !c.IsActive {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	ids := tree.DescendantIDs(id, true)

	now := time.Now()
	resp := map[string]any{}

	if c.CoversListings() {
		items, total, err := p.listings.List(store.ListingFilter{
			CategoryIDs: ids, ActiveOnly: true, Limit: limit, Offset: offset,
		})
		if err != nil {
			slog.Error("list category listings failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		views := make([]listingView, 0, len(items))
		for i := range items {
			views = append(views, listingPayload(&items[i], lang, p.hours, now))
		}
		resp["listings"] = views
		resp["listings_total"] = total
	}

	if c.CoversEvents() {
		items, total, err := p.events.List(store.EventFilter{
			CategoryIDs: ids, ActiveOnly: true, Limit: limit, Offset: offset,
		})
		if err != nil {
			slog.Error("list category events failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		views := make([]eventView, 0, len(items))
		for i := range items {
			views = append(views, eventPayload(&items[i], lang))
		}
		resp["events"] = views
		resp["events_total"] = total
	}

	writeJSON(w, http.StatusOK, resp)
}

// Listings returns active listings with optional category and featured
// filters. The category filter expands to the full descendant set.
func (p *Public) Listings(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromCtx(r.Context())
	limit, offset := pagination(r)
	q := r.URL.Query()

	filter := store.ListingFilter{ActiveOnly: true, Limit: limit, Offset: offset}
	cacheParts := []string{strconv.Itoa(limit), strconv.Itoa(offset)}

	if raw := q.Get("category"); raw != "" {
		catID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category")
			return
		}
		tree, err := p.categories.Tree()
		if err != nil {
			slog.Error("load category tree failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if tree.Get(catID) == nil {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		filter.CategoryIDs = tree.DescendantIDs(catID, true)
		cacheParts = append(cacheParts, "cat", raw)
	}
	if raw := q.Get("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
		cacheParts = append(cacheParts, "feat", strconv.FormatBool(featured))
	}

	p.cached(w, r, cache.Key("listings", string(lang), cacheParts...), func() (any, error) {
		items, total, err := p.listings.List(filter)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		views := make([]listingView, 0, len(items))
		for i := range items {
			views = append(views, listingPayload(&items[i], lang, p.hours, now))
		}
		return paged(r, views, total), nil
	})
}

// Listing returns one active listing with its linked promotions.
func (p *Public) Listing(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	lang := middleware.LanguageFromCtx(r.Context())

	l, err := p.listings.FindByID(id)
	if err != nil {
		slog.Error("find listing failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if l == nil || !l.IsActive {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	writeJSON(w, http.StatusOK, listingPayload(l, lang, p.hours, time.Now()))
}

// Events returns active events with an optional featured filter.
func (p *Public) Events(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromCtx(r.Context())
	limit, offset := pagination(r)

	filter := store.EventFilter{ActiveOnly: true, Limit: limit, Offset: offset}
	cacheParts := []string{strconv.Itoa(limit), strconv.Itoa(offset)}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
		cacheParts = append(cacheParts, "feat", strconv.FormatBool(featured))
	}

	p.cached(w, r, cache.Key("events", string(lang), cacheParts...), func() (any, error) {
		items, total, err := p.events.List(filter)
		if err != nil {
			return nil, err
		}
		views := make([]eventView, 0, len(items))
		for i := range items {
			views = append(views, eventPayload(&items[i], lang))
		}
		return paged(r, views, total), nil
	})
}

// Event returns one active event with its links.
func (p *Public) Event(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	lang := middleware.LanguageFromCtx(r.Context())

	e, err := p.events.FindByID(id)
	if err != nil {
		slog.Error("find event failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if e == nil || !e.IsActive {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, eventPayload(e, lang))
}

// JoinEvent registers the authenticated user for an event.
func (p *Public) JoinEvent(w http.ResponseWriter, r *http.Request) {
	p.changeJoin(w, r, true)
}

// UnjoinEvent removes the authenticated user's registration.
func (p *Public) UnjoinEvent(w http.ResponseWriter, r *http.Request) {
	p.changeJoin(w, r, false)
}

func (p *Public) changeJoin(w http.ResponseWriter, r *http.Request, join bool) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	e, err := p.events.FindByID(id)
	if err != nil {
		slog.Error("find event failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if e == nil || !e.IsActive {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	var count int
	if join {
		count, err = p.events.Join(id, claims.UserID)
	} else {
		count, err = p.events.Unjoin(id, claims.UserID)
	}
	if err != nil {
		slog.Error("event join change failed", "error", err, "event", id, "join", join)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if p.payloads != nil {
		p.payloads.InvalidateEntity(r.Context(), "events")
	}
	writeJSON(w, http.StatusOK, map[string]any{"joined": join, "join_count": count})
}

// Promotions returns current promotions with an optional featured filter.
func (p *Public) Promotions(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromCtx(r.Context())
	limit, offset := pagination(r)

	filter := store.PromotionFilter{CurrentOnly: true, Limit: limit, Offset: offset}
	cacheParts := []string{strconv.Itoa(limit), strconv.Itoa(offset)}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
		cacheParts = append(cacheParts, "feat", strconv.FormatBool(featured))
	}

	p.cached(w, r, cache.Key("promotions", string(lang), cacheParts...), func() (any, error) {
		items, total, err := p.promotions.List(filter)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		views := make([]promotionView, 0, len(items))
		for i := range items {
			views = append(views, promotionPayload(&items[i], lang, now))
		}
		return paged(r, views, total), nil
	})
}

// Promotion returns one promotion, expired ones included.
func (p *Public) Promotion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	lang := middleware.LanguageFromCtx(r.Context())

	pr, err := p.promotions.FindByID(id)
	if err != nil {
		slog.Error("find promotion failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if pr == nil {
		writeError(w, http.StatusNotFound, "promotion not found")
		return
	}
	writeJSON(w, http.StatusOK, promotionPayload(pr, lang, time.Now()))
}

// Blogs returns published blog posts with optional category and
// featured filters.
func (p *Public) Blogs(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromCtx(r.Context())
	limit, offset := pagination(r)
	q := r.URL.Query()

	filter := store.BlogFilter{PublishedOnly: true, Limit: limit, Offset: offset}
	cacheParts := []string{strconv.Itoa(limit), strconv.Itoa(offset)}
	if raw := q.Get("category"); raw != "" {
		filter.Category = models.BlogCategory(raw)
		cacheParts = append(cacheParts, "cat", raw)
	}
	if raw := q.Get("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
		cacheParts = append(cacheParts, "feat", strconv.FormatBool(featured))
	}

	p.cached(w, r, cache.Key("blogs", string(lang), cacheParts...), func() (any, error) {
		items, total, err := p.blogs.List(filter)
		if err != nil {
			return nil, err
		}
		views := make([]blogView, 0, len(items))
		for i := range items {
			views = append(views, blogPayload(&items[i], lang))
		}
		return paged(r, views, total), nil
	})
}

// Blog returns one published blog post.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	lang := middleware.LanguageFromCtx(r.Context())

	b, err := p.blogs.FindByID(id)
	if err != nil {
		slog.Error("find blog failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if b == nil || !b.Published {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}
	writeJSON(w, http.StatusOK, blogPayload(b, lang))
}
