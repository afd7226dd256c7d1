package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"weddash/internal/dashboard"
	"weddash/internal/handlers"
	"weddash/internal/handlers/api"
	"weddash/internal/middleware"
	"weddash/internal/planning"
)

// RegisterRoutes registers all application routes. store may be nil when
// the document store has no connection to probe.
func (s *Server) RegisterRoutes(ctx context.Context, repo *planning.Repository, store handlers.Pinger) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(s.Log)

	// Initialize handlers
	probeHandler := handlers.NewProbeHandler(store, s.Log)
	dashboardHandler := api.NewDashboardHandler(dashboard.NewAssembler(repo, s.Log), s.Log)
	planningHandler := api.NewPlanningHandler(repo, s.Log)

	// Ops routes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - owner sign-in is required outside development
	if s.Cfg.IsOIDCEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, s.Log)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else if !s.Cfg.IsDev() {
		return errors.New("OIDC_ISSUER and OIDC_CLIENT_ID are required outside development")
	} else {
		s.Log.Warn("OIDC is not configured; owner routes will reject every request")
	}

	// Shared dashboard routes - public, the owner is recognised when signed in
	s.App.Get("/d/:vanity", authMiddleware.OptionalAuth, dashboardHandler.Show)
	s.App.Post("/d/:vanity/code", authMiddleware.OptionalAuth, dashboardHandler.SubmitCode)
	s.App.Get("/d/:vanity/guests", authMiddleware.OptionalAuth, dashboardHandler.Guests)
	s.App.Get("/d/:vanity/events", authMiddleware.OptionalAuth, dashboardHandler.Events)

	// Owner API routes
	owner := s.App.Group("/api", authMiddleware.RequireAuth)
	owner.Get("/share", planningHandler.GetShare)
	owner.Put("/share", planningHandler.PutShare)
	owner.Delete("/share", planningHandler.DeleteShare)

	owner.Get("/guests", planningHandler.ListGuests)
	owner.Post("/guests", planningHandler.CreateGuest)
	owner.Put("/guests/:id", planningHandler.UpdateGuest)
	owner.Delete("/guests/:id", planningHandler.DeleteGuest)

	owner.Get("/budget-items", planningHandler.ListBudgetItems)
	owner.Post("/budget-items", planningHandler.CreateBudgetItem)
	owner.Put("/budget-items/:id", planningHandler.UpdateBudgetItem)
	owner.Delete("/budget-items/:id", planningHandler.DeleteBudgetItem)

	owner.Get("/vendors", planningHandler.ListVendors)
	owner.Put("/vendors/:id", planningHandler.SaveVendor)
	owner.Delete("/vendors/:id", planningHandler.DeleteVendor)

	owner.Get("/stats", planningHandler.Stats)

	s.Log.Info("routes registered", zap.Bool("oidc", s.Cfg.IsOIDCEnabled()))
	return nil
}
