package access

import "weddash/internal/models"

// Viewer is who is looking at a shared dashboard: either the owning couple
// (OwnerPreview) or anyone else (GuestSession).
type Viewer interface {
	viewer()
}

// OwnerPreview is the signed-in couple viewing their own dashboard.
type OwnerPreview struct {
	OwnerID string
}

// GuestSession is any other viewer. Unlocked is true once the session has
// passed the code check for this dashboard.
type GuestSession struct {
	Unlocked bool
}

func (OwnerPreview) viewer() {}
func (GuestSession) viewer() {}

// ResolveViewer classifies the viewer once, at the start of a request.
func ResolveViewer(viewerID string, sess Session, settings *models.ShareSettings) Viewer {
	if IsOwnerPreview(viewerID, settings.OwnerID) {
		return OwnerPreview{OwnerID: settings.OwnerID}
	}
	return GuestSession{Unlocked: HasAccess(sess, settings)}
}
