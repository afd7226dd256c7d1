package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"weddash/internal/access"
	"weddash/internal/dashboard"
	"weddash/internal/guests"
	"weddash/internal/middleware"
	"weddash/internal/models"
)

// DashboardHandler serves the public shared dashboard.
type DashboardHandler struct {
	assembler *dashboard.Assembler
	log       *zap.Logger
	keepAlive time.Duration
}

// NewDashboardHandler creates a new shared dashboard handler.
func NewDashboardHandler(assembler *dashboard.Assembler, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		assembler: assembler,
		log:       log,
		keepAlive: 25 * time.Second,
	}
}

// Show returns the dashboard for the viewer: the loaded view, a code
// prompt, or not found.
func (h *DashboardHandler) Show(c fiber.Ctx) error {
	res := h.assembler.Open(c.Context(), c.Params("vanity"), middleware.ViewerID(c), viewerSession(c))
	return respondResult(c, res)
}

// SubmitCode checks a share code and returns the dashboard when it matches.
func (h *DashboardHandler) SubmitCode(c fiber.Ctx) error {
	var req models.CodeRequest
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res := h.assembler.SubmitCode(c.Context(), c.Params("vanity"), req.Code, middleware.ViewerID(c), viewerSession(c))
	return respondResult(c, res)
}

// Guests returns the guest list of an unlocked dashboard, optionally
// narrowed to one side and one RSVP status.
func (h *DashboardHandler) Guests(c fiber.Ctx) error {
	side, sideOK := guests.Side(""), true
	if s := c.Query("side"); s != "" {
		side, sideOK = guests.ParseSide(s)
	}
	if !sideOK {
		return jsonError(c, fiber.StatusBadRequest, "side must be bride, groom or other")
	}
	filter, ok := guests.ParseStatusFilter(c.Query("status"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "status must be all, attending, pending or declined")
	}

	res := h.assembler.Open(c.Context(), c.Params("vanity"), middleware.ViewerID(c), viewerSession(c))
	if res.State != dashboard.Loaded {
		return respondResult(c, res)
	}

	stats := res.View.Guests
	var list []models.Guest
	if side == "" {
		list = make([]models.Guest, 0, stats.Overall.Total)
		list = append(list, stats.Bride.Guests...)
		list = append(list, stats.Groom.Guests...)
		list = append(list, stats.Other.Guests...)
	} else {
		list = guests.SideStatsFor(&stats, side).Guests
	}

	return jsonSuccess(c, guests.FilterByStatus(list, filter))
}

// Events streams a fresh dashboard as a server-sent event whenever the
// couple's records change. The subscription is released when the client
// disconnects.
func (h *DashboardHandler) Events(c fiber.Ctx) error {
	vanity := c.Params("vanity")

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan dashboard.Result, 1)
	stop, err := h.assembler.Watch(ctx, vanity, middleware.ViewerID(c), viewerSession(c), func(r dashboard.Result) {
		// Keep only the latest result for slow clients.
		select {
		case <-updates:
		default:
		}
		updates <- r
	})
	if err != nil {
		cancel()
		switch {
		case errors.Is(err, access.ErrShareSettingsNotFound):
			return jsonError(c, fiber.StatusNotFound, dashboard.NotFoundMessage)
		case errors.Is(err, dashboard.ErrLocked):
			return jsonError(c, fiber.StatusUnauthorized, "enter the access code first")
		}
		h.log.Error("failed to watch dashboard", zap.String("vanity_url", vanity), zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, dashboard.ErrorMessage)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	return c.SendStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer stop()

		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case res := <-updates:
				data, err := json.Marshal(res.Response())
				if err != nil {
					h.log.Error("failed to encode dashboard event", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: dashboard\ndata: %s\n\n", data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				h.log.Debug("dashboard event stream closed", zap.String("vanity_url", vanity))
				return
			}
		}
	})
}

// respondResult maps a dashboard result onto a status code and envelope.
func respondResult(c fiber.Ctx, res dashboard.Result) error {
	resp := res.Response()
	switch {
	case res.State == dashboard.NotFound:
		return jsonErrorData(c, fiber.StatusNotFound, res.Message, resp)
	case res.State == dashboard.Error:
		return jsonErrorData(c, fiber.StatusInternalServerError, res.Message, resp)
	case res.State == dashboard.AwaitingCode && res.Message != "":
		return jsonErrorData(c, fiber.StatusUnauthorized, res.Message, resp)
	}
	return jsonSuccess(c, resp)
}
