// Package dashboard assembles the read-only shared view of a couple's plans.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"weddash/internal/access"
	"weddash/internal/budget"
	"weddash/internal/guests"
	"weddash/internal/metrics"
	"weddash/internal/models"
)

// ErrLocked is returned by Watch when the viewer has not unlocked the dashboard.
var ErrLocked = errors.New("dashboard is locked")

// Source provides share settings and an owner's planning records.
type Source interface {
	access.SettingsSource
	Guests(ctx context.Context, ownerID string) ([]models.Guest, error)
	BudgetItems(ctx context.Context, ownerID string) ([]models.BudgetItem, error)
	SavedVendors(ctx context.Context, ownerID string) ([]models.SavedVendor, error)
	WatchOwner(ctx context.Context, ownerID string, fn func()) (func(), error)
}

// Assembler drives a viewer through the shared dashboard flow.
type Assembler struct {
	gate   *access.Gate
	source Source
	log    *zap.Logger
}

// NewAssembler creates an assembler reading from source.
func NewAssembler(source Source, log *zap.Logger) *Assembler {
	return &Assembler{
		gate:   access.NewGate(source),
		source: source,
		log:    log,
	}
}

// Open resolves vanityURL for a viewer arriving at the dashboard. The owner
// and sessions that already passed the code check go straight to Loaded;
// everyone else is asked for the code.
func (a *Assembler) Open(ctx context.Context, vanityURL, viewerID string, sess access.Session) Result {
	settings, res, ok := a.resolve(ctx, vanityURL)
	if !ok {
		return res
	}

	res, outcome := a.enter(ctx, settings, viewerID, sess)
	if outcome != "" {
		metrics.RecordAccess(outcome)
	}
	return res
}

// enter loads the dashboard for a viewer who needs no code check, or returns
// AwaitingCode. outcome is empty when the viewer is still locked out.
func (a *Assembler) enter(ctx context.Context, settings *models.ShareSettings, viewerID string, sess access.Session) (Result, string) {
	switch v := access.ResolveViewer(viewerID, sess, settings).(type) {
	case access.OwnerPreview:
		return a.load(ctx, settings, true), metrics.OutcomeOwnerPreview
	case access.GuestSession:
		if v.Unlocked {
			return a.load(ctx, settings, false), metrics.OutcomeSession
		}
	}
	return Result{State: AwaitingCode}, ""
}

// SubmitCode checks a share code. A wrong code leaves the viewer in
// AwaitingCode with a denial message; there is no retry limit.
func (a *Assembler) SubmitCode(ctx context.Context, vanityURL, code, viewerID string, sess access.Session) Result {
	settings, res, ok := a.resolve(ctx, vanityURL)
	if !ok {
		return res
	}

	if _, owner := access.ResolveViewer(viewerID, sess, settings).(access.OwnerPreview); owner {
		metrics.RecordAccess(metrics.OutcomeOwnerPreview)
		return a.load(ctx, settings, true)
	}

	if a.gate.CheckAccess(sess, settings.VanityURL, code, settings) == access.Denied {
		metrics.RecordAccess(metrics.OutcomeDenied)
		a.log.Info("share code rejected", zap.String("vanity_url", settings.VanityURL))
		return Result{State: AwaitingCode, Message: access.DeniedMessage}
	}

	metrics.RecordAccess(metrics.OutcomeGranted)
	return a.load(ctx, settings, false)
}

// Watch calls onChange with a freshly loaded Result each time the owner's
// records change, until the returned func is called or ctx is done.
// Bursts of changes are coalesced into one reload. Access is checked again on
// every reload: after a regenerated code or a change of owner at the vanity
// URL, onChange receives AwaitingCode or NotFound instead of the view.
func (a *Assembler) Watch(ctx context.Context, vanityURL, viewerID string, sess access.Session, onChange func(Result)) (func(), error) {
	settings, err := a.gate.ResolveShareSettings(ctx, vanityURL)
	if err != nil {
		return nil, err
	}

	if v, ok := access.ResolveViewer(viewerID, sess, settings).(access.GuestSession); ok && !v.Unlocked {
		return nil, ErrLocked
	}
	sess = access.Snapshot(sess, settings.VanityURL)

	changed := make(chan struct{}, 1)
	unsubscribe, err := a.source.WatchOwner(ctx, settings.OwnerID, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-changed:
				onChange(a.reload(ctx, vanityURL, viewerID, sess))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}, nil
}

func (a *Assembler) reload(ctx context.Context, vanityURL, viewerID string, sess access.Session) Result {
	settings, res, ok := a.resolve(ctx, vanityURL)
	if !ok {
		return res
	}
	res, _ = a.enter(ctx, settings, viewerID, sess)
	return res
}

func (a *Assembler) resolve(ctx context.Context, vanityURL string) (*models.ShareSettings, Result, bool) {
	settings, err := a.gate.ResolveShareSettings(ctx, vanityURL)
	if errors.Is(err, access.ErrShareSettingsNotFound) {
		metrics.RecordAccess(metrics.OutcomeNotFound)
		return nil, Result{State: NotFound, Message: NotFoundMessage}, false
	}
	if err != nil {
		a.log.Error("failed to resolve share settings", zap.String("vanity_url", vanityURL), zap.Error(err))
		return nil, Result{State: Error, Message: ErrorMessage}, false
	}
	return settings, Result{State: Resolving}, true
}

// load fetches the owner's records concurrently and aggregates them once all
// three have arrived. Any failed fetch fails the whole dashboard.
func (a *Assembler) load(ctx context.Context, settings *models.ShareSettings, preview bool) Result {
	start := time.Now()

	var (
		guestList []models.Guest
		items     []models.BudgetItem
		vendors   []models.SavedVendor
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		guestList, err = a.source.Guests(gctx, settings.OwnerID)
		return err
	})
	g.Go(func() (err error) {
		items, err = a.source.BudgetItems(gctx, settings.OwnerID)
		return err
	})
	g.Go(func() (err error) {
		vendors, err = a.source.SavedVendors(gctx, settings.OwnerID)
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.RecordLoad(metrics.LoadError, time.Since(start))
		a.log.Error("failed to load dashboard",
			zap.String("vanity_url", settings.VanityURL),
			zap.String("owner_id", settings.OwnerID),
			zap.Error(err),
		)
		return Result{State: Error, Message: ErrorMessage}
	}

	view := &models.DashboardView{
		VanityURL:    settings.VanityURL,
		OwnerPreview: preview,
		Guests:       guests.Aggregate(guestList),
		Budget:       budget.Aggregate(items),
		BudgetItems:  items,
		Vendors:      vendors,
	}
	metrics.RecordLoad(metrics.LoadOK, time.Since(start))

	return Result{State: Loaded, View: view}
}
