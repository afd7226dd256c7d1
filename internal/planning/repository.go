// Package planning reads and writes a couple's planning records in the
// document store.
package planning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weddash/internal/access"
	"weddash/internal/budget"
	"weddash/internal/metrics"
	"weddash/internal/models"
	"weddash/internal/store"
)

// Repository maps planning records onto document paths.
type Repository struct {
	docs store.Documents
	log  *zap.Logger
}

// NewRepository creates a repository over docs.
func NewRepository(docs store.Documents, log *zap.Logger) *Repository {
	return &Repository{docs: docs, log: log}
}

// ShareSettings looks up the public share index entry for vanityURL.
// A missing entry yields access.ErrShareSettingsNotFound.
func (r *Repository) ShareSettings(ctx context.Context, vanityURL string) (*models.ShareSettings, error) {
	data, err := r.docs.Get(ctx, store.PublicDashboardPath(vanityURL))
	if errors.Is(err, store.ErrNotFound) {
		return nil, access.ErrShareSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read share settings: %w", err)
	}

	var doc publicDashboardDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode share settings for %s: %w", vanityURL, err)
	}
	if doc.OwnerID == "" {
		return nil, access.ErrShareSettingsNotFound
	}

	return &models.ShareSettings{
		VanityURL: vanityURL,
		ShareCode: doc.ShareCode,
		OwnerID:   doc.OwnerID,
	}, nil
}

// Guests returns the owner's guests ordered by name.
func (r *Repository) Guests(ctx context.Context, ownerID string) ([]models.Guest, error) {
	children, err := r.docs.List(ctx, store.GuestsPath(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}

	guests := make([]models.Guest, 0, len(children))
	for id, data := range children {
		var doc guestDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			r.log.Warn("skipping unreadable guest record",
				zap.String("owner_id", ownerID), zap.String("guest_id", id), zap.Error(err))
			continue
		}
		status, ok := models.ParseGuestStatus(doc.Status)
		if !ok && doc.Status != "" {
			r.log.Warn("unknown guest status, counting as pending",
				zap.String("owner_id", ownerID), zap.String("guest_id", id), zap.String("status", doc.Status))
		}
		guests = append(guests, models.Guest{
			ID:     id,
			Name:   doc.Name,
			Status: status,
			Group:  doc.Group,
		})
	}

	sort.Slice(guests, func(i, j int) bool {
		if guests[i].Name != guests[j].Name {
			return guests[i].Name < guests[j].Name
		}
		return guests[i].ID < guests[j].ID
	})
	return guests, nil
}

// BudgetItems returns the owner's budget items ordered by name.
// Amounts that are not non-negative numbers are read as zero.
func (r *Repository) BudgetItems(ctx context.Context, ownerID string) ([]models.BudgetItem, error) {
	children, err := r.docs.List(ctx, store.BudgetItemsPath(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list budget items: %w", err)
	}

	items := make([]models.BudgetItem, 0, len(children))
	for id, data := range children {
		var doc budgetItemDoc
		if err := decodeNumbers(data, &doc); err != nil {
			r.log.Warn("skipping unreadable budget item",
				zap.String("owner_id", ownerID), zap.String("item_id", id), zap.Error(err))
			continue
		}
		items = append(items, models.BudgetItem{
			ID:     id,
			Name:   doc.Name,
			Budget: r.amount(ownerID, id, "budget", doc.Budget),
			Spent:  r.amount(ownerID, id, "spent", doc.Spent),
			Notes:  doc.Notes,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// amount coerces a stored amount; a missing field is zero without a warning.
func (r *Repository) amount(ownerID, itemID, field string, raw any) float64 {
	v, ok := budget.CoerceNonNegative(raw)
	if !ok && raw != nil {
		r.log.Warn("malformed budget amount, counting as zero",
			zap.String("owner_id", ownerID),
			zap.String("item_id", itemID),
			zap.String("field", field),
			zap.Any("value", raw),
		)
		metrics.RecordMalformedField(field)
	}
	return v
}

// SavedVendors returns the owner's saved vendors ordered by name.
func (r *Repository) SavedVendors(ctx context.Context, ownerID string) ([]models.SavedVendor, error) {
	children, err := r.docs.List(ctx, store.SavedVendorsPath(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list saved vendors: %w", err)
	}

	vendors := make([]models.SavedVendor, 0, len(children))
	for id, data := range children {
		var doc vendorDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			r.log.Warn("skipping unreadable vendor record",
				zap.String("owner_id", ownerID), zap.String("vendor_id", id), zap.Error(err))
			continue
		}
		vendors = append(vendors, models.SavedVendor{
			ID:       id,
			Name:     doc.Name,
			Category: doc.Category,
			ImageID:  doc.ImageID,
		})
	}

	sort.Slice(vendors, func(i, j int) bool {
		if vendors[i].Name != vendors[j].Name {
			return vendors[i].Name < vendors[j].Name
		}
		return vendors[i].ID < vendors[j].ID
	})
	return vendors, nil
}

// WatchOwner calls fn whenever any of the owner's records change.
func (r *Repository) WatchOwner(ctx context.Context, ownerID string, fn func()) (func(), error) {
	return r.docs.Subscribe(ctx, store.UserPath(ownerID), func(string) { fn() })
}

// CreateGuest stores a new guest, assigning its ID. An empty status becomes Pending.
func (r *Repository) CreateGuest(ctx context.Context, ownerID string, g models.Guest) (*models.Guest, error) {
	g.ID = uuid.NewString()
	if g.Status == "" {
		g.Status = models.StatusPending
	}
	if err := r.putGuest(ctx, ownerID, g); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGuest replaces an existing guest wholesale.
func (r *Repository) UpdateGuest(ctx context.Context, ownerID string, g models.Guest) (*models.Guest, error) {
	if err := r.mustExist(ctx, store.Join(store.GuestsPath(ownerID), g.ID), ErrGuestNotFound); err != nil {
		return nil, err
	}
	if g.Status == "" {
		g.Status = models.StatusPending
	}
	if err := r.putGuest(ctx, ownerID, g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGuest removes a guest.
func (r *Repository) DeleteGuest(ctx context.Context, ownerID, guestID string) error {
	p := store.Join(store.GuestsPath(ownerID), guestID)
	if err := r.mustExist(ctx, p, ErrGuestNotFound); err != nil {
		return err
	}
	return r.docs.Delete(ctx, p)
}

func (r *Repository) putGuest(ctx context.Context, ownerID string, g models.Guest) error {
	return r.put(ctx, store.Join(store.GuestsPath(ownerID), g.ID), guestDoc{
		Name:   g.Name,
		Status: string(g.Status),
		Group:  g.Group,
	})
}

// CreateBudgetItem stores a new budget item, assigning its ID.
func (r *Repository) CreateBudgetItem(ctx context.Context, ownerID string, item models.BudgetItem) (*models.BudgetItem, error) {
	item.ID = uuid.NewString()
	if err := r.putBudgetItem(ctx, ownerID, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateBudgetItem replaces an existing budget item wholesale.
func (r *Repository) UpdateBudgetItem(ctx context.Context, ownerID string, item models.BudgetItem) (*models.BudgetItem, error) {
	if err := r.mustExist(ctx, store.Join(store.BudgetItemsPath(ownerID), item.ID), ErrBudgetItemNotFound); err != nil {
		return nil, err
	}
	if err := r.putBudgetItem(ctx, ownerID, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteBudgetItem removes a budget item.
func (r *Repository) DeleteBudgetItem(ctx context.Context, ownerID, itemID string) error {
	p := store.Join(store.BudgetItemsPath(ownerID), itemID)
	if err := r.mustExist(ctx, p, ErrBudgetItemNotFound); err != nil {
		return err
	}
	return r.docs.Delete(ctx, p)
}

func (r *Repository) putBudgetItem(ctx context.Context, ownerID string, item models.BudgetItem) error {
	return r.put(ctx, store.Join(store.BudgetItemsPath(ownerID), item.ID), budgetItemDoc{
		Name:   item.Name,
		Budget: item.Budget,
		Spent:  item.Spent,
		Notes:  item.Notes,
	})
}

// SaveVendor bookmarks a vendor under its vendor ID, replacing any earlier copy.
func (r *Repository) SaveVendor(ctx context.Context, ownerID string, v models.SavedVendor) error {
	return r.put(ctx, store.Join(store.SavedVendorsPath(ownerID), v.ID), vendorDoc{
		Name:     v.Name,
		Category: v.Category,
		ImageID:  v.ImageID,
	})
}

// DeleteVendor removes a saved vendor.
func (r *Repository) DeleteVendor(ctx context.Context, ownerID, vendorID string) error {
	p := store.Join(store.SavedVendorsPath(ownerID), vendorID)
	if err := r.mustExist(ctx, p, ErrVendorNotFound); err != nil {
		return err
	}
	return r.docs.Delete(ctx, p)
}

func (r *Repository) put(ctx context.Context, path string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := r.docs.Put(ctx, path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (r *Repository) mustExist(ctx context.Context, path string, notFound error) error {
	_, err := r.docs.Get(ctx, path)
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return err
}
