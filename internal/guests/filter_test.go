package guests

import (
	"testing"

	"weddash/internal/models"
)

func TestFilterByStatus(t *testing.T) {
	list := []models.Guest{
		{ID: "1", Status: models.StatusAttending},
		{ID: "2", Status: models.StatusPending},
		{ID: "3", Status: models.StatusAttending},
		{ID: "4", Status: models.StatusDeclined},
	}

	tests := []struct {
		name   string
		filter StatusFilter
		want   []string
	}{
		{"all is identity", FilterAll, []string{"1", "2", "3", "4"}},
		{"attending", StatusFilter(models.StatusAttending), []string{"1", "3"}},
		{"pending", StatusFilter(models.StatusPending), []string{"2"}},
		{"declined", StatusFilter(models.StatusDeclined), []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByStatus(list, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterByStatus() returned %d guests, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("FilterByStatus()[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterByStatus_Empty(t *testing.T) {
	got := FilterByStatus(nil, StatusFilter(models.StatusPending))
	if len(got) != 0 {
		t.Errorf("FilterByStatus(nil) = %v, want empty", got)
	}
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		in     string
		want   StatusFilter
		wantOK bool
	}{
		{"", FilterAll, true},
		{"all", FilterAll, true},
		{"ALL", FilterAll, true},
		{"attending", StatusFilter(models.StatusAttending), true},
		{"Declined", StatusFilter(models.StatusDeclined), true},
		{"maybe", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStatusFilter(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseStatusFilter(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
