package guests

import (
	"fmt"
	"math/rand"
	"testing"

	"weddash/internal/models"
)

func TestAggregate_MixedSides(t *testing.T) {
	list := []models.Guest{
		{ID: "1", Name: "Ann", Status: models.StatusAttending, Group: "Bride"},
		{ID: "2", Name: "Bo", Status: models.StatusPending, Group: "groom"},
		{ID: "3", Name: "Cy", Status: models.StatusDeclined, Group: ""},
	}

	stats := Aggregate(list)

	wantOverall := models.GuestCounts{Total: 3, Attending: 1, Pending: 1, Declined: 1}
	if stats.Overall != wantOverall {
		t.Errorf("Overall = %+v, want %+v", stats.Overall, wantOverall)
	}
	if got := stats.Bride.GuestCounts; got != (models.GuestCounts{Total: 1, Attending: 1}) {
		t.Errorf("Bride = %+v, want total 1 attending 1", got)
	}
	if got := stats.Groom.GuestCounts; got != (models.GuestCounts{Total: 1, Pending: 1}) {
		t.Errorf("Groom = %+v, want total 1 pending 1", got)
	}
	if got := stats.Other.GuestCounts; got != (models.GuestCounts{Total: 1, Declined: 1}) {
		t.Errorf("Other = %+v, want total 1 declined 1", got)
	}
	if len(stats.Bride.Guests) != 1 || stats.Bride.Guests[0].ID != "1" {
		t.Errorf("Bride.Guests = %+v, want guest 1", stats.Bride.Guests)
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)

	if stats.Overall != (models.GuestCounts{}) {
		t.Errorf("Overall = %+v, want zero", stats.Overall)
	}
	for _, side := range []models.SideStats{stats.Bride, stats.Groom, stats.Other} {
		if side.Guests == nil {
			t.Error("side member list is nil, want empty slice")
		}
	}
}

func TestSideOf(t *testing.T) {
	tests := []struct {
		group string
		want  Side
	}{
		{"bride", SideBride},
		{"Bride", SideBride},
		{"BRIDE", SideBride},
		{"groom", SideGroom},
		{"GrOoM", SideGroom},
		{"", SideOther},
		{"friends", SideOther},
		{" bride", SideOther},
		{"bride's family", SideOther},
		{"brides", SideOther},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.group), func(t *testing.T) {
			if got := SideOf(tt.group); got != tt.want {
				t.Errorf("SideOf(%q) = %q, want %q", tt.group, got, tt.want)
			}
		})
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in     string
		want   Side
		wantOK bool
	}{
		{"bride", SideBride, true},
		{"GROOM", SideGroom, true},
		{"other", SideOther, true},
		{"", "", false},
		{"family", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSide(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSide(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

// randomGuests builds a deterministic pseudo-random guest list.
func randomGuests(r *rand.Rand, n int) []models.Guest {
	statuses := []models.GuestStatus{models.StatusAttending, models.StatusPending, models.StatusDeclined}
	groups := []string{"bride", "Bride", "groom", "GROOM", "", "work", "family", "groomsmen"}

	list := make([]models.Guest, n)
	for i := range list {
		list[i] = models.Guest{
			ID:     fmt.Sprintf("g%d", i),
			Name:   fmt.Sprintf("Guest %d", i),
			Status: statuses[r.Intn(len(statuses))],
			Group:  groups[r.Intn(len(groups))],
		}
	}
	return list
}

func TestAggregate_CountsSumToTotal(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		list := randomGuests(r, r.Intn(60))
		stats := Aggregate(list)

		if stats.Overall.Total != len(list) {
			t.Fatalf("Overall.Total = %d, want %d", stats.Overall.Total, len(list))
		}
		for name, c := range map[string]models.GuestCounts{
			"overall": stats.Overall,
			"bride":   stats.Bride.GuestCounts,
			"groom":   stats.Groom.GuestCounts,
			"other":   stats.Other.GuestCounts,
		} {
			if c.Attending+c.Pending+c.Declined != c.Total {
				t.Fatalf("%s counts %+v do not sum to total", name, c)
			}
		}
	}
}

func TestAggregate_PartitionsGuests(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		list := randomGuests(r, r.Intn(60))
		stats := Aggregate(list)

		seen := make(map[string]int)
		for _, side := range []models.SideStats{stats.Bride, stats.Groom, stats.Other} {
			if side.Total != len(side.Guests) {
				t.Fatalf("side total %d != member count %d", side.Total, len(side.Guests))
			}
			for _, g := range side.Guests {
				seen[g.ID]++
			}
		}

		if len(seen) != len(list) {
			t.Fatalf("buckets hold %d distinct guests, want %d", len(seen), len(list))
		}
		for _, g := range list {
			if seen[g.ID] != 1 {
				t.Fatalf("guest %s appears in %d buckets, want 1", g.ID, seen[g.ID])
			}
		}
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	list := randomGuests(rand.New(rand.NewSource(1)), 25)

	a := Aggregate(list)
	b := Aggregate(list)
	if fmt.Sprintf("%+v", a) != fmt.Sprintf("%+v", b) {
		t.Error("Aggregate() is not deterministic for the same input")
	}
}
