package dashboard

import "weddash/internal/models"

// State is where a viewer is in the shared dashboard flow.
type State string

const (
	Resolving    State = "resolving"
	NotFound     State = "not_found"
	AwaitingCode State = "awaiting_code"
	Loaded       State = "loaded"
	Error        State = "error"
)

// Terminal reports whether the viewer has to navigate away to leave s.
func (s State) Terminal() bool {
	return s == NotFound || s == Error
}

// Messages shown for terminal states.
const (
	NotFoundMessage = "This dashboard does not exist or is no longer shared."
	ErrorMessage    = "We couldn't load this dashboard. Please reload the page to try again."
)

// Result is the outcome of one step of the flow. View is set only when
// State is Loaded.
type Result struct {
	State   State
	Message string
	View    *models.DashboardView
}

// Response converts r to its JSON shape.
func (r Result) Response() models.DashboardResponse {
	return models.DashboardResponse{
		State:   string(r.State),
		Message: r.Message,
		View:    r.View,
	}
}
