package planning

import (
	"bytes"
	"encoding/json"
)

// Stored document shapes. Field names follow the document store's
// camelCase convention and are decoupled from the API models.

type publicDashboardDoc struct {
	OwnerID   string `json:"ownerId"`
	ShareCode string `json:"shareCode"`
}

type shareSettingsDoc struct {
	VanityURL string `json:"vanityUrl"`
	ShareCode string `json:"shareCode"`
}

type guestDoc struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Group  string `json:"group,omitempty"`
}

// budgetItemDoc keeps amounts untyped so malformed values can be coerced
// instead of failing the whole list.
type budgetItemDoc struct {
	Name   string `json:"name"`
	Budget any    `json:"budget"`
	Spent  any    `json:"spent"`
	Notes  string `json:"notes,omitempty"`
}

type vendorDoc struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageID  string `json:"imageId"`
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
