package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	store Pinger
	log   *zap.Logger
}

// NewProbeHandler creates a new probe handler. A nil store is always ready.
func NewProbeHandler(store Pinger, log *zap.Logger) *ProbeHandler {
	return &ProbeHandler{store: store, log: log}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the application can serve traffic (document store is reachable).
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.store != nil {
		if err := h.store.Ping(c.Context()); err != nil {
			h.log.Warn("readiness check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  "document store unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
