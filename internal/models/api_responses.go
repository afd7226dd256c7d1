package models

// DashboardResponse is the JSON body for shared dashboard requests.
type DashboardResponse struct {
	State   string         `json:"state"`
	Message string         `json:"message,omitempty"`
	View    *DashboardView `json:"view,omitempty"`
}

// ShareSettingsRequest is the owner's request to publish or rename a dashboard.
type ShareSettingsRequest struct {
	VanityURL string `json:"vanity_url"`
	// Regenerate forces a new share code even when the vanity URL is unchanged.
	Regenerate bool `json:"regenerate"`
}

// CodeRequest carries a viewer's share code submission.
type CodeRequest struct {
	Code string `json:"code"`
}

// GuestRequest is the owner's create/replace payload for a guest.
type GuestRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Group  string `json:"group"`
}

// BudgetItemRequest is the owner's create/replace payload for a budget item.
type BudgetItemRequest struct {
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
	Notes  string  `json:"notes"`
}

// SavedVendorRequest is the owner's payload for bookmarking a vendor.
type SavedVendorRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageID  string `json:"image_id"`
}

// OwnerStatsResponse is the owner's own planning summary.
type OwnerStatsResponse struct {
	Guests GuestStats  `json:"guests"`
	Budget BudgetStats `json:"budget"`
}
