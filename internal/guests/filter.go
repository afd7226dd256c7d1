package guests

import (
	"strings"

	"weddash/internal/models"
)

// StatusFilter selects guests by RSVP status; FilterAll keeps everyone.
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts "all" (or empty) and the guest statuses,
// case-insensitively.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	if s == "" || strings.EqualFold(s, string(FilterAll)) {
		return FilterAll, true
	}
	status, ok := models.ParseGuestStatus(s)
	if !ok {
		return "", false
	}
	return StatusFilter(status), true
}

// FilterByStatus returns the guests whose status equals filter.
func FilterByStatus(list []models.Guest, filter StatusFilter) []models.Guest {
	if filter == FilterAll {
		return list
	}

	out := make([]models.Guest, 0, len(list))
	for _, g := range list {
		if StatusFilter(g.Status) == filter {
			out = append(out, g)
		}
	}
	return out
}
