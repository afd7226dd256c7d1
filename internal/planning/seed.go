package planning

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"weddash/internal/config"
	"weddash/internal/models"
	"weddash/internal/store"
	"weddash/internal/validation"
)

// Seed writes development data from the seed file. Each couple's existing
// records are replaced.
func (r *Repository) Seed(ctx context.Context, seed *config.SeedConfig) error {
	if seed == nil {
		return nil
	}

	for i, c := range seed.Couples {
		vanity := validation.NormalizeVanityURL(c.VanityURL)
		if ok, msg := validation.ValidateVanityURL(vanity); !ok {
			return fmt.Errorf("seed couple %s: %s", c.OwnerID, msg)
		}
		if first := seed.GetCoupleByVanity(vanity); first != &seed.Couples[i] {
			return fmt.Errorf("seed couple %s: vanity URL %s already used by %s", c.OwnerID, vanity, first.OwnerID)
		}

		code := validation.NormalizeShareCode(c.ShareCode)
		if code != "" && !validation.ValidateShareCode(code) {
			return fmt.Errorf("seed couple %s: invalid share code", c.OwnerID)
		}

		if err := r.docs.Delete(ctx, store.UserPath(c.OwnerID)); err != nil {
			return fmt.Errorf("seed couple %s: %w", c.OwnerID, err)
		}

		settings, err := r.publish(ctx, c.OwnerID, vanity, code, false)
		if err != nil {
			return fmt.Errorf("seed couple %s: %w", c.OwnerID, err)
		}

		for _, g := range c.Guests {
			status, _ := models.ParseGuestStatus(g.Status)
			if _, err := r.CreateGuest(ctx, c.OwnerID, models.Guest{Name: g.Name, Status: status, Group: g.Group}); err != nil {
				return err
			}
		}
		for _, b := range c.BudgetItems {
			if _, err := r.CreateBudgetItem(ctx, c.OwnerID, models.BudgetItem{Name: b.Name, Budget: b.Budget, Spent: b.Spent, Notes: b.Notes}); err != nil {
				return err
			}
		}
		for _, v := range c.Vendors {
			if err := r.SaveVendor(ctx, c.OwnerID, models.SavedVendor{ID: v.ID, Name: v.Name, Category: v.Category, ImageID: v.ImageID}); err != nil {
				return err
			}
		}

		r.log.Info("seeded couple",
			zap.String("owner_id", c.OwnerID),
			zap.String("vanity_url", vanity),
			zap.String("share_code", settings.ShareCode),
			zap.Int("guests", len(c.Guests)),
			zap.Int("budget_items", len(c.BudgetItems)),
		)
	}

	return nil
}
