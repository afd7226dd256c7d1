package models

// ShareSettings ties a public vanity URL and share code to the owning couple.
type ShareSettings struct {
	VanityURL string `json:"vanity_url"`
	ShareCode string `json:"share_code"` // stored upper-cased
	OwnerID   string `json:"owner_id"`
}

// DashboardView is the read model shown to a shared-dashboard viewer.
type DashboardView struct {
	VanityURL    string        `json:"vanity_url"`
	OwnerPreview bool          `json:"owner_preview"`
	Guests       GuestStats    `json:"guests"`
	Budget       BudgetStats   `json:"budget"`
	BudgetItems  []BudgetItem  `json:"budget_items"`
	Vendors      []SavedVendor `json:"vendors"`
}
