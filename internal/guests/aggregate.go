// Package guests computes side-aware RSVP statistics over a guest list.
package guests

import (
	"strings"

	"weddash/internal/models"
)

// Side is one partition of the guest list.
type Side string

const (
	SideBride Side = "bride"
	SideGroom Side = "groom"
	SideOther Side = "other"
)

// SideOf buckets a free-text group label. Only an exact case-insensitive
// match of "bride" or "groom" selects those sides.
func SideOf(group string) Side {
	switch strings.ToLower(group) {
	case string(SideBride):
		return SideBride
	case string(SideGroom):
		return SideGroom
	}
	return SideOther
}

// ParseSide parses a side name; the empty string and unknown values fail.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToLower(s)) {
	case SideBride:
		return SideBride, true
	case SideGroom:
		return SideGroom, true
	case SideOther:
		return SideOther, true
	}
	return "", false
}

// Aggregate counts guests overall and per side. Member lists keep input order.
func Aggregate(list []models.Guest) models.GuestStats {
	stats := models.GuestStats{
		Bride: models.SideStats{Guests: []models.Guest{}},
		Groom: models.SideStats{Guests: []models.Guest{}},
		Other: models.SideStats{Guests: []models.Guest{}},
	}

	for _, g := range list {
		count(&stats.Overall, g.Status)

		side := SideStatsFor(&stats, SideOf(g.Group))
		count(&side.GuestCounts, g.Status)
		side.Guests = append(side.Guests, g)
	}

	return stats
}

// SideStatsFor returns the bucket of stats for side.
func SideStatsFor(stats *models.GuestStats, side Side) *models.SideStats {
	switch side {
	case SideBride:
		return &stats.Bride
	case SideGroom:
		return &stats.Groom
	}
	return &stats.Other
}

func count(c *models.GuestCounts, status models.GuestStatus) {
	c.Total++
	switch status {
	case models.StatusAttending:
		c.Attending++
	case models.StatusPending:
		c.Pending++
	case models.StatusDeclined:
		c.Declined++
	}
}
