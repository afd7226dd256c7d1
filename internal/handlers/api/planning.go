package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"weddash/internal/budget"
	"weddash/internal/guests"
	"weddash/internal/middleware"
	"weddash/internal/models"
	"weddash/internal/planning"
	"weddash/internal/validation"
)

// PlanningHandler lets the signed-in couple manage the records their
// shared dashboard is built from.
type PlanningHandler struct {
	repo *planning.Repository
	log  *zap.Logger
}

// NewPlanningHandler creates a new owner planning handler.
func NewPlanningHandler(repo *planning.Repository, log *zap.Logger) *PlanningHandler {
	return &PlanningHandler{repo: repo, log: log}
}

// GetShare returns the owner's share settings.
func (h *PlanningHandler) GetShare(c fiber.Ctx) error {
	settings, err := h.repo.OwnerShareSettings(c.Context(), middleware.ViewerID(c))
	if errors.Is(err, planning.ErrNotShared) {
		return jsonError(c, fiber.StatusNotFound, "dashboard is not shared")
	}
	if err != nil {
		return h.internalError(c, "failed to fetch share settings", err)
	}
	return jsonSuccess(c, settings)
}

// PutShare publishes the dashboard at a vanity URL, optionally with a new code.
func (h *PlanningHandler) PutShare(c fiber.Ctx) error {
	var req models.ShareSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	vanity := validation.NormalizeVanityURL(req.VanityURL)
	if valid, msg := validation.ValidateVanityURL(vanity); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	settings, err := h.repo.PublishShareSettings(c.Context(), middleware.ViewerID(c), vanity, req.Regenerate)
	if errors.Is(err, planning.ErrVanityTaken) {
		return jsonError(c, fiber.StatusConflict, err.Error())
	}
	if err != nil {
		return h.internalError(c, "failed to publish dashboard", err)
	}
	return jsonSuccess(c, settings)
}

// DeleteShare stops sharing the dashboard.
func (h *PlanningHandler) DeleteShare(c fiber.Ctx) error {
	err := h.repo.UnpublishShareSettings(c.Context(), middleware.ViewerID(c))
	if errors.Is(err, planning.ErrNotShared) {
		return jsonError(c, fiber.StatusNotFound, "dashboard is not shared")
	}
	if err != nil {
		return h.internalError(c, "failed to unpublish dashboard", err)
	}
	return jsonSuccess(c, fiber.Map{"message": "dashboard is no longer shared"})
}

// ListGuests returns the owner's guests.
func (h *PlanningHandler) ListGuests(c fiber.Ctx) error {
	list, err := h.repo.Guests(c.Context(), middleware.ViewerID(c))
	if err != nil {
		return h.internalError(c, "failed to fetch guests", err)
	}
	return jsonSuccess(c, list)
}

// CreateGuest adds a guest.
func (h *PlanningHandler) CreateGuest(c fiber.Ctx) error {
	g, msg := guestFromBody(c)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	created, err := h.repo.CreateGuest(c.Context(), middleware.ViewerID(c), g)
	if err != nil {
		return h.internalError(c, "failed to create guest", err)
	}
	return jsonCreated(c, created)
}

// UpdateGuest replaces a guest.
func (h *PlanningHandler) UpdateGuest(c fiber.Ctx) error {
	id := c.Params("id")
	if !validation.ValidateRecordID(id) {
		return jsonError(c, fiber.StatusBadRequest, "invalid guest id")
	}
	g, msg := guestFromBody(c)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	g.ID = id

	updated, err := h.repo.UpdateGuest(c.Context(), middleware.ViewerID(c), g)
	if errors.Is(err, planning.ErrGuestNotFound) {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return h.internalError(c, "failed to update guest", err)
	}
	return jsonSuccess(c, updated)
}

// DeleteGuest removes a guest.
func (h *PlanningHandler) DeleteGuest(c fiber.Ctx) error {
	id := c.Params("id")
	if !validation.ValidateRecordID(id) {
		return jsonError(c, fiber.StatusBadRequest, "invalid guest id")
	}

	err := h.repo.DeleteGuest(c.Context(), middleware.ViewerID(c), id)
	if errors.Is(err, planning.ErrGuestNotFound) {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return h.internalError(c, "failed to delete guest", err)
	}
	return jsonSuccess(c, fiber.Map{"message": "guest deleted"})
}

// ListBudgetItems returns the owner's budget lines.
func (h *PlanningHandler) ListBudgetItems(c fiber.Ctx) error {
	items, err := h.repo.BudgetItems(c.Context(), middleware.ViewerID(c))
	if err != nil {
		return h.internalError(c, "failed to fetch budget items", err)
	}
	return jsonSuccess(c, items)
}

// CreateBudgetItem adds a budget line.
func (h *PlanningHandler) CreateBudgetItem(c fiber.Ctx) error {
	item, msg := budgetItemFromBody(c)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	created, err := h.repo.CreateBudgetItem(c.Context(), middleware.ViewerID(c), item)
	if err != nil {
		return h.internalError(c, "failed to create budget item", err)
	}
	return jsonCreated(c, created)
}

// UpdateBudgetItem replaces a budget line.
func (h *PlanningHandler) UpdateBudgetItem(c fiber.Ctx) error {
	id := c.Params("id")
	if !validation.ValidateRecordID(id) {
		return jsonError(c, fiber.StatusBadRequest, "invalid budget item id")
	}
	item, msg := budgetItemFromBody(c)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	item.ID = id

	updated, err := h.repo.UpdateBudgetItem(c.Context(), middleware.ViewerID(c), item)
	if errors.Is(err, planning.ErrBudgetItemNotFound) {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return h.internalError(c, "failed to update budget item", err)
	}
	return jsonSuccess(c, updated)
}

// DeleteBudgetItem removes a budget line.
func (h *PlanningHandler) DeleteBudgetItem(c fiber.Ctx) error {
	id := c.Params("id")
	if !validation.ValidateRecordID(id) {
		return jsonError(c, fiber.StatusBadRequest, "invalid budget item id")
	}

	err := h.repo.DeleteBudgetItem(c.Context(), middleware.ViewerID(c), id)
	if errors.Is(err, planning.ErrBudgetItemNotFound) {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return h.internalError(c, "failed to delete budget item", err)
	}
	return jsonSuccess(c, fiber.Map{"message": "budget item deleted"})
}

// ListVendors returns the owner's saved vendors.
func (h *PlanningHandler) ListVendors(c fiber.Ctx) error {
	vendors, err := h.repo.SavedVendors(c.Context(), middleware.ViewerID(c))
	if err != nil {
		return h.internalError(c, "failed to fetch saved vendors", err)
	}
	return jsonSuccess(c, vendors)
}

// SaveVendor bookmarks a vendor under its directory id.
func (h *PlanningHandler) SaveVendor(c fiber.Ctx) error {
	id := c.Params("id")
	if !validation.ValidateRecordID(id) {
		return jsonError(c, fiber.StatusBadRequest, "invalid vendor id")
	}

	var req models.SavedVendorRequest
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return jsonError(c, fiber.StatusBadRequest, "vendor name is required")
	}

	v := models.SavedVendor{
		ID:       id,
		Name:     name,
		Category: strings.TrimSpace(req.Category),
		ImageID:  req.ImageID,
	}
	if err := h.repo.SaveVendor(c.Context(), middleware.ViewerID(c), v); err != nil {
		return h.internalError(c, "failed to save vendor", err)
	}
	return jsonSuccess(c, v)
}

// DeleteVendor removes a saved vendor.
func (h *PlanningHandler) DeleteVendor(c fiber.Ctx) error {
	id := c.Params("id")
	if !validation.ValidateRecordID(id) {
		return jsonError(c, fiber.StatusBadRequest, "invalid vendor id")
	}

	err := h.repo.DeleteVendor(c.Context(), middleware.ViewerID(c), id)
	if errors.Is(err, planning.ErrVendorNotFound) {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return h.internalError(c, "failed to delete vendor", err)
	}
	return jsonSuccess(c, fiber.Map{"message": "vendor removed"})
}

// Stats returns the owner's guest and budget summary.
func (h *PlanningHandler) Stats(c fiber.Ctx) error {
	owner := middleware.ViewerID(c)

	list, err := h.repo.Guests(c.Context(), owner)
	if err != nil {
		return h.internalError(c, "failed to fetch guests", err)
	}
	items, err := h.repo.BudgetItems(c.Context(), owner)
	if err != nil {
		return h.internalError(c, "failed to fetch budget items", err)
	}

	return jsonSuccess(c, models.OwnerStatsResponse{
		Guests: guests.Aggregate(list),
		Budget: budget.Aggregate(items),
	})
}

func (h *PlanningHandler) internalError(c fiber.Ctx, message string, err error) error {
	h.log.Error(message, zap.String("owner_id", middleware.ViewerID(c)), zap.Error(err))
	return jsonError(c, fiber.StatusInternalServerError, message)
}

func guestFromBody(c fiber.Ctx) (models.Guest, string) {
	var req models.GuestRequest
	if err := parseBody(c, &req); err != nil {
		return models.Guest{}, "invalid request body"
	}
	if valid, msg := validation.ValidateGuestName(req.Name); !valid {
		return models.Guest{}, msg
	}

	status := models.StatusPending
	if req.Status != "" {
		var ok bool
		if status, ok = models.ParseGuestStatus(req.Status); !ok {
			return models.Guest{}, "status must be Attending, Pending or Declined"
		}
	}

	return models.Guest{
		Name:   strings.TrimSpace(req.Name),
		Status: status,
		Group:  strings.TrimSpace(req.Group),
	}, ""
}

func budgetItemFromBody(c fiber.Ctx) (models.BudgetItem, string) {
	var req models.BudgetItemRequest
	if err := parseBody(c, &req); err != nil {
		return models.BudgetItem{}, "invalid request body"
	}
	if valid, msg := validation.ValidateBudgetItem(req.Name, req.Budget, req.Spent); !valid {
		return models.BudgetItem{}, msg
	}
	if valid, msg := validation.ValidateNotes(req.Notes); !valid {
		return models.BudgetItem{}, msg
	}

	return models.BudgetItem{
		Name:   strings.TrimSpace(req.Name),
		Budget: req.Budget,
		Spent:  req.Spent,
		Notes:  req.Notes,
	}, ""
}
