// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires all HTTP routes and middleware chains for the
// city-guide API. Routes are grouped into public, authenticated, and
// admin back-office surfaces with appropriate middleware stacks.
package router

import (
	"github.com/go-chi/chi/v5"

	"gogevgelija/internal/auth"
	"gogevgelija/internal/handlers"
	"gogevgelija/internal/middleware"
	"gogevgelija/internal/session"
	"gogevgelija/internal/store"
)

// New creates and returns the configured chi router with all middleware
// and route groups wired up. guests may be nil when Valkey is absent.
func New(
	users *store.UserStore,
	guests *session.Store,
	tokens *auth.TokenManager,
	public *handlers.Public,
	account *handlers.Auth,
	wishlist *handlers.Wishlist,
	support *handlers.Support,
	owner *handlers.Owner,
	admin *handlers.Admin,
) chi.Router {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(middleware.APIRequestLimit, middleware.APIWindow)

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(limiter.Middleware)
	r.Use(middleware.LoadToken(tokens))
	r.Use(middleware.Language(users, guests))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", public.Health)

		// Public content, localized via the Language middleware.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", public.Categories)
			r.Get("/{id}", public.Category)
			r.Get("/{id}/items", public.CategoryItems)
		})
		r.Get("/listings", public.Listings)
		r.Get("/listings/{id}", public.Listing)
		r.Get("/events", public.Events)
		r.Get("/events/{id}", public.Event)
		r.Get("/promotions", public.Promotions)
		r.Get("/promotions/{id}", public.Promotion)
		r.Get("/blogs", public.Blogs)
		r.Get("/blogs/{id}", public.Blog)

		// Event joins need a user identity.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/events/{id}/join", public.JoinEvent)
			r.Post("/events/{id}/unjoin", public.UnjoinEvent)
		})

		// Account endpoints.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", account.Register)
			r.Post("/login", account.Login)
			r.Post("/refresh", account.Refresh)
			r.Post("/guest", account.Guest)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", account.Me)
				r.Put("/me", account.UpdateMe)
				r.Get("/language", account.GetLanguage)
				r.Post("/language", account.SetLanguage)
			})
		})

		// Authenticated user features.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlist.List)
				r.Post("/", wishlist.Add)
				r.Post("/remove", wishlist.Remove)
				r.Post("/check", wishlist.Check)
			})

			r.Route("/support", func(r chi.Router) {
				r.Get("/", support.Mine)
				r.Post("/", support.Submit)
				r.Get("/categories", support.Categories)
				r.Get("/priorities", support.Priorities)
			})

			r.Route("/collaboration", func(r chi.Router) {
				r.Get("/", support.MyCollaborations)
				r.Post("/", support.SubmitCollaboration)
				r.Get("/types", support.CollaborationTypes)
			})

			// Venue-owner editing, gated per listing by permission grants.
			r.Get("/listings/{id}/edit", owner.GetListing)
			r.Patch("/listings/{id}/edit", owner.PatchListing)
		})

		// Admin back-office.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)

			// 2FA enrollment requires admin auth but NOT a completed
			// challenge; it is how the challenge gets completed.
			r.Post("/2fa/setup", admin.TwoFASetup)
			r.Post("/2fa/verify", admin.TwoFAVerify)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Require2FA)

				r.Get("/users", admin.Users)
				r.Post("/users/{id}/reset-2fa", admin.ResetUser2FA)

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", admin.Categories)
					r.Post("/", admin.CreateCategory)
					r.Put("/{id}", admin.UpdateCategory)
					r.Delete("/{id}", admin.DeleteCategory)
				})

				r.Route("/listings", func(r chi.Router) {
					r.Get("/", admin.Listings)
					r.Post("/", admin.CreateListing)
					r.Get("/{id}", admin.Listing)
					r.Put("/{id}", admin.UpdateListing)
					r.Delete("/{id}", admin.DeleteListing)
				})

				r.Route("/events", func(r chi.Router) {
					r.Get("/", admin.Events)
					r.Post("/", admin.CreateEvent)
					r.Get("/{id}", admin.Event)
					r.Put("/{id}", admin.UpdateEvent)
					r.Delete("/{id}", admin.DeleteEvent)
				})

				r.Route("/promotions", func(r chi.Router) {
					r.Get("/", admin.Promotions)
					r.Post("/", admin.CreatePromotion)
					r.Get("/{id}", admin.Promotion)
					r.Put("/{id}", admin.UpdatePromotion)
					r.Delete("/{id}", admin.DeletePromotion)
				})

				r.Route("/blogs", func(r chi.Router) {
					r.Get("/", admin.Blogs)
					r.Post("/", admin.CreateBlog)
					r.Get("/{id}", admin.Blog)
					r.Put("/{id}", admin.UpdateBlog)
					r.Delete("/{id}", admin.DeleteBlog)
				})

				r.Route("/permissions", func(r chi.Router) {
					r.Get("/", admin.Permissions)
					r.Post("/", admin.GrantPermission)
					r.Post("/revoke", admin.RevokePermission)
				})

				r.Route("/support", func(r chi.Router) {
					r.Get("/", admin.SupportRequests)
					r.Put("/{id}", admin.RespondSupport)
				})

				r.Route("/collaboration", func(r chi.Router) {
					r.Get("/", admin.CollaborationRequests)
					r.Put("/{id}", admin.ReviewCollaboration)
				})

				r.Route("/media", func(r chi.Router) {
					r.Get("/", admin.MediaList)
					r.Post("/", admin.MediaUpload)
					r.Delete("/{id}", admin.MediaDelete)
				})
			})
		})
	})

	return r
}
