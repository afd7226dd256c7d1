package planning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"weddash/internal/access"
	"weddash/internal/models"
	"weddash/internal/store"
)

// OwnerShareSettings returns the owner's current share settings.
func (r *Repository) OwnerShareSettings(ctx context.Context, ownerID string) (*models.ShareSettings, error) {
	data, err := r.docs.Get(ctx, store.ShareSettingsPath(ownerID))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotShared
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read share settings: %w", err)
	}

	var doc shareSettingsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode share settings: %w", err)
	}
	return &models.ShareSettings{
		VanityURL: doc.VanityURL,
		ShareCode: doc.ShareCode,
		OwnerID:   ownerID,
	}, nil
}

// PublishShareSettings publishes the owner's dashboard at vanityURL.
//
// The existing share code is kept when only the vanity URL changes; a new code
// is generated on first publish or when regenerate is set. Renaming removes the
// old public index entry. vanityURL must already be normalized and validated.
func (r *Repository) PublishShareSettings(ctx context.Context, ownerID, vanityURL string, regenerate bool) (*models.ShareSettings, error) {
	return r.publish(ctx, ownerID, vanityURL, "", regenerate)
}

// publish stores the share settings with code, or with the owner's current
// or a generated code when code is empty.
func (r *Repository) publish(ctx context.Context, ownerID, vanityURL, code string, regenerate bool) (*models.ShareSettings, error) {
	taken, err := r.ShareSettings(ctx, vanityURL)
	switch {
	case errors.Is(err, access.ErrShareSettingsNotFound):
	case err != nil:
		return nil, err
	case taken.OwnerID != ownerID:
		return nil, ErrVanityTaken
	}

	current, err := r.OwnerShareSettings(ctx, ownerID)
	if err != nil && !errors.Is(err, ErrNotShared) {
		return nil, err
	}

	if code == "" && current != nil && !regenerate {
		code = current.ShareCode
	}
	if code == "" {
		if code, err = access.GenerateShareCode(); err != nil {
			return nil, fmt.Errorf("failed to generate share code: %w", err)
		}
	}

	if err := r.writeShare(ctx, ownerID, vanityURL, code); err != nil {
		return nil, err
	}

	if current != nil && current.VanityURL != "" && current.VanityURL != vanityURL {
		if err := r.removeIndexEntry(ctx, ownerID, current.VanityURL); err != nil {
			// SweepStaleIndex removes it later.
			r.log.Error("failed to remove old public dashboard entry",
				zap.String("owner_id", ownerID), zap.String("vanity_url", current.VanityURL), zap.Error(err))
		}
	}

	return &models.ShareSettings{VanityURL: vanityURL, ShareCode: code, OwnerID: ownerID}, nil
}

// UnpublishShareSettings removes the owner's dashboard from the public index.
func (r *Repository) UnpublishShareSettings(ctx context.Context, ownerID string) error {
	current, err := r.OwnerShareSettings(ctx, ownerID)
	if err != nil {
		return err
	}
	if current.VanityURL != "" {
		if err := r.removeIndexEntry(ctx, ownerID, current.VanityURL); err != nil {
			return fmt.Errorf("failed to remove public dashboard: %w", err)
		}
	}
	return r.docs.Delete(ctx, store.ShareSettingsPath(ownerID))
}

// removeIndexEntry deletes the public entry for vanityURL if ownerID still owns it.
func (r *Repository) removeIndexEntry(ctx context.Context, ownerID, vanityURL string) error {
	entry, err := r.ShareSettings(ctx, vanityURL)
	if errors.Is(err, access.ErrShareSettingsNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if entry.OwnerID != ownerID {
		return nil
	}
	return r.docs.Delete(ctx, store.PublicDashboardPath(vanityURL))
}

// writeShare stores the owner's settings before the public entry, so an
// entry never points at an owner whose settings name another vanity URL
// except while a rename is cleaning up.
func (r *Repository) writeShare(ctx context.Context, ownerID, vanityURL, code string) error {
	if err := r.put(ctx, store.ShareSettingsPath(ownerID), shareSettingsDoc{VanityURL: vanityURL, ShareCode: code}); err != nil {
		return err
	}
	return r.put(ctx, store.PublicDashboardPath(vanityURL), publicDashboardDoc{OwnerID: ownerID, ShareCode: code})
}

// SweepStaleIndex removes public entries whose owner no longer publishes at
// that vanity URL, such as those left behind by an interrupted rename.
// It returns the number of entries removed.
func (r *Repository) SweepStaleIndex(ctx context.Context) (int, error) {
	entries, err := r.docs.List(ctx, store.PublicDashboardsRoot)
	if err != nil {
		return 0, fmt.Errorf("failed to list public dashboards: %w", err)
	}

	removed := 0
	for vanityURL, data := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		var doc publicDashboardDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			r.log.Warn("unreadable public dashboard entry", zap.String("vanity_url", vanityURL), zap.Error(err))
			continue
		}

		stale := doc.OwnerID == ""
		if !stale {
			current, err := r.OwnerShareSettings(ctx, doc.OwnerID)
			switch {
			case errors.Is(err, ErrNotShared):
				stale = true
			case err != nil:
				return removed, err
			default:
				stale = current.VanityURL != vanityURL
			}
		}
		if !stale {
			continue
		}

		if err := r.docs.Delete(ctx, store.PublicDashboardPath(vanityURL)); err != nil {
			return removed, fmt.Errorf("failed to remove stale entry %s: %w", vanityURL, err)
		}
		removed++
		r.log.Info("removed stale public dashboard entry",
			zap.String("vanity_url", vanityURL), zap.String("owner_id", doc.OwnerID))
	}

	return removed, nil
}
