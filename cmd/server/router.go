package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/recallhq/flashcard-api/internal/api"
	apiMiddleware "github.com/recallhq/flashcard-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	collectionHandler := api.NewCollectionHandler(app.collectionService)
	cardHandler := api.NewCardHandler(app.cardService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	adminHandler := api.NewAdminHandler(app.adminService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			// Collection endpoints
			r.Post("/collections", collectionHandler.Create)
			r.Get("/collections", collectionHandler.List)
			r.Get("/collections/{id}", collectionHandler.Get)
			r.Patch("/collections/{id}", collectionHandler.Update)
			r.Delete("/collections/{id}", collectionHandler.Delete)

			// Card endpoints
			r.Post("/collections/{id}/cards", cardHandler.Create)
			r.Get("/collections/{id}/cards", cardHandler.List)
			r.Get("/cards/{id}", cardHandler.Get)
			r.Patch("/cards/{id}", cardHandler.Update)
			r.Delete("/cards/{id}", cardHandler.Delete)

			// Review endpoints
			r.Post("/cards/{id}/review", reviewHandler.Submit)
			r.Get("/collections/{id}/due", reviewHandler.Due)

			// Admin endpoints; the service layer enforces the admin role
			r.Get("/admin/users", adminHandler.ListUsers)
			r.Get("/admin/users/{id}", adminHandler.GetUser)
			r.Delete("/admin/users/{id}", adminHandler.DeleteUser)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
