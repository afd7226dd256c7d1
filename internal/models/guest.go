package models

import "strings"

// GuestStatus is a guest's RSVP state.
type GuestStatus string

const (
	StatusAttending GuestStatus = "Attending"
	StatusPending   GuestStatus = "Pending"
	StatusDeclined  GuestStatus = "Declined"
)

// ParseGuestStatus matches s case-insensitively against the known statuses.
// Empty or unknown values return StatusPending and false.
func ParseGuestStatus(s string) (GuestStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attending":
		return StatusAttending, true
	case "pending":
		return StatusPending, true
	case "declined":
		return StatusDeclined, true
	}
	return StatusPending, false
}

// Guest is one entry in a couple's guest list.
type Guest struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Status GuestStatus `json:"status"`
	Group  string      `json:"group,omitempty"` // free text, "bride"/"groom" select a side
}

// GuestCounts holds RSVP totals for a set of guests.
type GuestCounts struct {
	Total     int `json:"total"`
	Attending int `json:"attending"`
	Pending   int `json:"pending"`
	Declined  int `json:"declined"`
}

// SideStats is the aggregate for one side of the guest list plus its members.
type SideStats struct {
	GuestCounts
	Guests []Guest `json:"guests"`
}

// GuestStats is the side-aware RSVP summary of a guest list.
type GuestStats struct {
	Overall GuestCounts `json:"overall"`
	Bride   SideStats   `json:"bride"`
	Groom   SideStats   `json:"groom"`
	Other   SideStats   `json:"other"`
}
