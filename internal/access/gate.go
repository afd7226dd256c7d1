// Package access gates a couple's shared dashboard behind its share code.
//
// A correct code marks the viewer's session as unlocked for that vanity URL.
// The marker lives only as long as the browser session and is a convenience,
// not a security boundary: anyone holding the code can unlock a fresh session.
// There is no lockout or attempt counting on wrong codes. Regenerating the
// code, or a new couple publishing at the same URL, relocks old sessions.
package access

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"weddash/internal/models"
	"weddash/internal/validation"
)

// ErrShareSettingsNotFound means no dashboard is published at the vanity URL.
var ErrShareSettingsNotFound = errors.New("shared dashboard not found")

// DeniedMessage is shown to a viewer who entered the wrong code.
const DeniedMessage = "That access code is not correct. Please check it and try again."

// Decision is the outcome of a code check.
type Decision int

const (
	Denied Decision = iota
	Granted
)

func (d Decision) String() string {
	if d == Granted {
		return "granted"
	}
	return "denied"
}

// Session is the session-scoped key/value map markers are kept in.
type Session interface {
	Get(key string) any
	Set(key string, value any)
}

// SettingsSource looks up published share settings by vanity URL.
// It returns ErrShareSettingsNotFound when nothing is published.
type SettingsSource interface {
	ShareSettings(ctx context.Context, vanityURL string) (*models.ShareSettings, error)
}

// Gate decides whether a viewer may see a shared dashboard.
type Gate struct {
	settings SettingsSource
}

// NewGate creates a gate backed by the public share index.
func NewGate(settings SettingsSource) *Gate {
	return &Gate{settings: settings}
}

// ResolveShareSettings looks up the settings published at vanityURL.
func (g *Gate) ResolveShareSettings(ctx context.Context, vanityURL string) (*models.ShareSettings, error) {
	vanityURL = validation.NormalizeVanityURL(vanityURL)
	if ok, _ := validation.ValidateVanityURL(vanityURL); !ok {
		return nil, ErrShareSettingsNotFound
	}
	return g.settings.ShareSettings(ctx, vanityURL)
}

// CheckAccess compares the submitted code with the stored one, ignoring case.
// On success the session is marked unlocked for the vanity URL.
func (g *Gate) CheckAccess(sess Session, vanityURL, submitted string, settings *models.ShareSettings) Decision {
	if settings == nil || settings.ShareCode == "" {
		return Denied
	}

	want := validation.NormalizeShareCode(settings.ShareCode)
	got := validation.NormalizeShareCode(submitted)
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return Denied
	}

	grant(sess, vanityURL, settings)
	return Granted
}

// IsOwnerPreview reports whether the signed-in viewer owns the dashboard.
func IsOwnerPreview(viewerID, ownerID string) bool {
	return viewerID != "" && viewerID == ownerID
}

// HasAccess reports whether the session was unlocked for the dashboard
// currently published as settings. A marker left by another owner of the same
// vanity URL, or by a share code that has since been regenerated, does not count.
func HasAccess(sess Session, settings *models.ShareSettings) bool {
	if sess == nil || settings == nil || settings.ShareCode == "" {
		return false
	}
	got, _ := sess.Get(markerKey(settings.VanityURL)).(string)
	want := markerValue(settings)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func grant(sess Session, vanityURL string, settings *models.ShareSettings) {
	if sess == nil {
		return
	}
	sess.Set(markerKey(vanityURL), markerValue(settings))
}

func markerKey(vanityURL string) string {
	return "dashboard_access:" + validation.NormalizeVanityURL(vanityURL)
}

// markerValue binds the unlock to the owner and a digest of the current code.
func markerValue(settings *models.ShareSettings) string {
	sum := sha256.Sum256([]byte(validation.NormalizeShareCode(settings.ShareCode)))
	return settings.OwnerID + ":" + hex.EncodeToString(sum[:])
}
