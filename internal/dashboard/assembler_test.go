package dashboard

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"weddash/internal/access"
	"weddash/internal/models"
	"weddash/internal/planning"
	"weddash/internal/store"
)

// failingSource wraps a repository and fails selected fetches. With
// blockGuests set, Guests waits for its context to end and then reports
// the cancellation on released.
type failingSource struct {
	*planning.Repository
	failVendors bool
	blockGuests bool
	released    chan error
}

func (s *failingSource) Guests(ctx context.Context, ownerID string) ([]models.Guest, error) {
	if s.blockGuests {
		<-ctx.Done()
		s.released <- ctx.Err()
		return nil, ctx.Err()
	}
	return s.Repository.Guests(ctx, ownerID)
}

func (s *failingSource) SavedVendors(ctx context.Context, ownerID string) ([]models.SavedVendor, error) {
	if s.failVendors {
		return nil, errors.New("connection reset")
	}
	return s.Repository.SavedVendors(ctx, ownerID)
}

const (
	testOwner  = "owner-1"
	testVanity = "ann-and-bo"
)

func setup(t *testing.T) (*Assembler, *failingSource, string) {
	t.Helper()
	ctx := context.Background()

	repo := planning.NewRepository(store.NewMemory(), zap.NewNop())
	settings, err := repo.PublishShareSettings(ctx, testOwner, testVanity, false)
	if err != nil {
		t.Fatalf("PublishShareSettings() error = %v", err)
	}

	guestsIn := []models.Guest{
		{Name: "Ann", Status: models.StatusAttending, Group: "Bride"},
		{Name: "Bo", Status: models.StatusPending, Group: "groom"},
		{Name: "Cy", Status: models.StatusDeclined},
	}
	for _, g := range guestsIn {
		if _, err := repo.CreateGuest(ctx, testOwner, g); err != nil {
			t.Fatal(err)
		}
	}
	repo.CreateBudgetItem(ctx, testOwner, models.BudgetItem{Name: "Venue", Budget: 1000, Spent: 1200})
	repo.CreateBudgetItem(ctx, testOwner, models.BudgetItem{Name: "Music", Budget: 500})
	repo.SaveVendor(ctx, testOwner, models.SavedVendor{ID: "v1", Name: "Petal Pushers", Category: "Florist"})

	src := &failingSource{Repository: repo, released: make(chan error, 1)}
	return NewAssembler(src, zap.NewNop()), src, settings.ShareCode
}

func TestOpen_UnknownVanityIsNotFound(t *testing.T) {
	a, _, _ := setup(t)

	for _, vanity := range []string{"nobody-here", "", "Bad Vanity!"} {
		res := a.Open(context.Background(), vanity, "", access.NewMapSession())
		if res.State != NotFound {
			t.Errorf("Open(%q) state = %s, want %s", vanity, res.State, NotFound)
		}
		if !res.State.Terminal() {
			t.Errorf("Open(%q) state %s should be terminal", vanity, res.State)
		}
	}

	// Submitting a code to an unknown dashboard never reaches the code check
	res := a.SubmitCode(context.Background(), "nobody-here", "AB12CD", "", access.NewMapSession())
	if res.State != NotFound {
		t.Errorf("SubmitCode() state = %s, want %s", res.State, NotFound)
	}
}

func TestOpen_GuestIsAskedForCode(t *testing.T) {
	a, _, _ := setup(t)

	res := a.Open(context.Background(), testVanity, "someone-else", access.NewMapSession())
	if res.State != AwaitingCode {
		t.Fatalf("Open() state = %s, want %s", res.State, AwaitingCode)
	}
	if res.View != nil || res.Message != "" {
		t.Errorf("Open() = %+v, want no view and no message", res)
	}
}

func TestOpen_OwnerPreviewSkipsCode(t *testing.T) {
	a, _, _ := setup(t)

	res := a.Open(context.Background(), testVanity, testOwner, access.NewMapSession())
	if res.State != Loaded {
		t.Fatalf("Open() as owner state = %s, want %s", res.State, Loaded)
	}
	if !res.View.OwnerPreview {
		t.Error("View.OwnerPreview = false, want true")
	}
}

func TestSubmitCode_WrongThenRight(t *testing.T) {
	a, _, code := setup(t)
	ctx := context.Background()
	sess := access.NewMapSession()

	for i := 0; i < 5; i++ {
		res := a.SubmitCode(ctx, testVanity, "ZZZZZZ", "", sess)
		if res.State != AwaitingCode || res.Message != access.DeniedMessage {
			t.Fatalf("attempt %d: SubmitCode() = %s %q, want denied prompt", i, res.State, res.Message)
		}
	}

	res := a.SubmitCode(ctx, testVanity, " "+strings.ToLower(code)+" ", "", sess)
	if res.State != Loaded {
		t.Fatalf("SubmitCode(correct) state = %s, want %s", res.State, Loaded)
	}
	if res.View.OwnerPreview {
		t.Error("View.OwnerPreview = true for a guest")
	}

	// The session stays unlocked on the next visit
	if res := a.Open(ctx, testVanity, "", sess); res.State != Loaded {
		t.Errorf("Open() after unlock state = %s, want %s", res.State, Loaded)
	}
	// A fresh session does not
	if res := a.Open(ctx, testVanity, "", access.NewMapSession()); res.State != AwaitingCode {
		t.Errorf("Open() with new session state = %s, want %s", res.State, AwaitingCode)
	}
}

func TestLoad_AggregatesView(t *testing.T) {
	a, _, _ := setup(t)

	res := a.Open(context.Background(), testVanity, testOwner, nil)
	if res.State != Loaded {
		t.Fatalf("Open() state = %s", res.State)
	}
	v := res.View

	want := models.GuestCounts{Total: 3, Attending: 1, Pending: 1, Declined: 1}
	if v.Guests.Overall != want {
		t.Errorf("Overall = %+v, want %+v", v.Guests.Overall, want)
	}
	if v.Guests.Bride.Total != 1 || v.Guests.Bride.Attending != 1 {
		t.Errorf("Bride = %+v", v.Guests.Bride.GuestCounts)
	}
	if v.Guests.Groom.Total != 1 || v.Guests.Groom.Pending != 1 {
		t.Errorf("Groom = %+v", v.Guests.Groom.GuestCounts)
	}
	if v.Guests.Other.Total != 1 || v.Guests.Other.Declined != 1 {
		t.Errorf("Other = %+v", v.Guests.Other.GuestCounts)
	}

	b := v.Budget
	if b.TotalBudgeted != 1500 || b.TotalSpent != 1200 || b.Remaining != 300 || math.Abs(b.ProgressPercent-80) > 1e-9 {
		t.Errorf("Budget = %+v", b)
	}
	if len(v.BudgetItems) != 2 || len(v.Vendors) != 1 {
		t.Errorf("BudgetItems = %d, Vendors = %d", len(v.BudgetItems), len(v.Vendors))
	}
}

func TestLoad_FetchFailureFailsWholeDashboard(t *testing.T) {
	a, src, code := setup(t)
	src.failVendors = true

	res := a.SubmitCode(context.Background(), testVanity, code, "", access.NewMapSession())
	if res.State != Error {
		t.Fatalf("SubmitCode() state = %s, want %s", res.State, Error)
	}
	if res.View != nil {
		t.Error("Error result carries a partial view")
	}
	if res.Message != ErrorMessage {
		t.Errorf("Message = %q, want generic error message", res.Message)
	}
}

func TestLoad_FailedFetchCancelsOthers(t *testing.T) {
	a, src, _ := setup(t)
	src.failVendors = true
	src.blockGuests = true

	settings, err := src.ShareSettings(context.Background(), testVanity)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan Result, 1)
	go func() { done <- a.load(context.Background(), settings, false) }()

	select {
	case res := <-done:
		if res.State != Error {
			t.Errorf("load() state = %s, want %s", res.State, Error)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("load() still waiting on a fetch after another fetch failed")
	}
	if err := <-src.released; !errors.Is(err, context.Canceled) {
		t.Errorf("blocked fetch released with %v, want context.Canceled", err)
	}
}

func TestLoad_RespectsCallerCancel(t *testing.T) {
	a, src, _ := setup(t)
	src.blockGuests = true

	settings, err := src.ShareSettings(context.Background(), testVanity)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() { done <- a.load(ctx, settings, false) }()
	cancel()

	select {
	case res := <-done:
		if res.State != Error || res.View != nil {
			t.Errorf("load() = %+v, want Error without a view", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("load() did not return after the caller cancelled")
	}
	if err := <-src.released; !errors.Is(err, context.Canceled) {
		t.Errorf("blocked fetch released with %v, want context.Canceled", err)
	}
}

func TestOpen_UnlockDoesNotCarryOver(t *testing.T) {
	a, src, code := setup(t)
	ctx := context.Background()
	sess := access.NewMapSession()

	if res := a.SubmitCode(ctx, testVanity, code, "", sess); res.State != Loaded {
		t.Fatalf("SubmitCode() state = %s, want %s", res.State, Loaded)
	}

	// Regenerating the code relocks the session
	if _, err := src.PublishShareSettings(ctx, testOwner, testVanity, true); err != nil {
		t.Fatalf("PublishShareSettings(regenerate) error = %v", err)
	}
	if res := a.Open(ctx, testVanity, "", sess); res.State != AwaitingCode {
		t.Errorf("Open() after regenerate state = %s, want %s", res.State, AwaitingCode)
	}

	// Unlock again, then hand the vanity URL to another couple
	settings, err := src.ShareSettings(ctx, testVanity)
	if err != nil {
		t.Fatal(err)
	}
	if res := a.SubmitCode(ctx, testVanity, settings.ShareCode, "", sess); res.State != Loaded {
		t.Fatalf("SubmitCode(new code) state = %s, want %s", res.State, Loaded)
	}
	if err := src.UnpublishShareSettings(ctx, testOwner); err != nil {
		t.Fatal(err)
	}
	if _, err := src.PublishShareSettings(ctx, "owner-2", testVanity, false); err != nil {
		t.Fatalf("PublishShareSettings(owner-2) error = %v", err)
	}
	src.CreateGuest(ctx, "owner-2", models.Guest{Name: "Private Guest"})

	res := a.Open(ctx, testVanity, "", sess)
	if res.State != AwaitingCode {
		t.Fatalf("Open() for new owner state = %s, want %s", res.State, AwaitingCode)
	}
	if res.View != nil {
		t.Errorf("Open() for new owner exposed %+v", res.View)
	}
}

func TestWatch_RelocksAfterRegenerate(t *testing.T) {
	a, src, code := setup(t)
	ctx := context.Background()
	sess := access.NewMapSession()

	if res := a.SubmitCode(ctx, testVanity, code, "", sess); res.State != Loaded {
		t.Fatalf("SubmitCode() state = %s, want %s", res.State, Loaded)
	}

	results := make(chan Result, 4)
	stop, err := a.Watch(ctx, testVanity, "", sess, func(r Result) { results <- r })
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer stop()

	if _, err := src.PublishShareSettings(ctx, testOwner, testVanity, true); err != nil {
		t.Fatal(err)
	}
	src.CreateGuest(ctx, testOwner, models.Guest{Name: "Di"})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case r := <-results:
			if r.State == Loaded {
				// a reload queued before the new code was written
				continue
			}
			if r.State != AwaitingCode || r.View != nil {
				t.Fatalf("reload after regenerate = %+v, want AwaitingCode", r)
			}
			return
		case <-deadline:
			t.Fatal("no relock after regenerate")
		}
	}
}

func TestWatch(t *testing.T) {
	a, src, _ := setup(t)
	ctx := context.Background()

	if _, err := a.Watch(ctx, testVanity, "", access.NewMapSession(), func(Result) {}); !errors.Is(err, ErrLocked) {
		t.Fatalf("Watch() locked error = %v, want ErrLocked", err)
	}
	if _, err := a.Watch(ctx, "nobody-here", testOwner, nil, func(Result) {}); !errors.Is(err, access.ErrShareSettingsNotFound) {
		t.Fatalf("Watch() unknown error = %v, want ErrShareSettingsNotFound", err)
	}

	results := make(chan Result, 4)
	stop, err := a.Watch(ctx, testVanity, testOwner, nil, func(r Result) { results <- r })
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer stop()

	src.CreateGuest(ctx, testOwner, models.Guest{Name: "Di", Status: models.StatusAttending, Group: "bride"})

	select {
	case r := <-results:
		if r.State != Loaded {
			t.Fatalf("reload state = %s", r.State)
		}
		if r.View.Guests.Overall.Total != 4 || r.View.Guests.Bride.Total != 2 {
			t.Errorf("reload guests = %+v", r.View.Guests.Overall)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload after change")
	}

	stop()
	stop()
	src.CreateGuest(ctx, testOwner, models.Guest{Name: "Ed"})
	select {
	case r := <-results:
		t.Errorf("reload after stop: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestState_Terminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{Resolving, false},
		{NotFound, true},
		{AwaitingCode, false},
		{Loaded, false},
		{Error, true},
	}
	for _, tt := range tests {
		if got := tt.state.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.state, got, tt.want)
		}
	}
}
