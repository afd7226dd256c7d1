package models

// SavedVendor is the display projection of a vendor the couple bookmarked.
type SavedVendor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageID  string `json:"image_id"`
}
