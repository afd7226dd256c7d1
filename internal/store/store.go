// Package store defines the hierarchical keyed-document store the planning
// data lives in, plus an in-memory implementation.
//
// Documents are addressed by slash-separated paths such as
// "users/{ownerID}/guests/{guestID}". A path is both a document and the
// parent of any deeper paths.
package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when no document exists at a path.
var ErrNotFound = errors.New("document not found")

// Documents is the keyed-document read/write interface.
type Documents interface {
	// Get returns the raw JSON document stored at path.
	Get(ctx context.Context, path string) ([]byte, error)
	// List returns the direct children of path keyed by their last segment.
	// A path with no children yields an empty map, not an error.
	List(ctx context.Context, path string) (map[string][]byte, error)
	// Put stores value at path, replacing any existing document.
	Put(ctx context.Context, path string, value []byte) error
	// Delete removes the document at path and everything below it.
	Delete(ctx context.Context, path string) error
	// Subscribe calls fn with the changed path whenever a document at or
	// below prefix is written or deleted. The returned func releases the
	// subscription and is safe to call more than once.
	Subscribe(ctx context.Context, prefix string, fn func(path string)) (func(), error)
}

// Join builds a document path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// Parent returns the parent path of p, or "" for a top-level path.
func Parent(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Key returns the last segment of p.
func Key(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// Within reports whether p is prefix itself or lies below it.
func Within(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// Well-known paths.

func PublicDashboardPath(vanityURL string) string {
	return Join("publicDashboards", vanityURL)
}

// PublicDashboardsRoot is the public share index.
const PublicDashboardsRoot = "publicDashboards"

func UserPath(ownerID string) string {
	return Join("users", ownerID)
}

func GuestsPath(ownerID string) string {
	return Join("users", ownerID, "guests")
}

func BudgetItemsPath(ownerID string) string {
	return Join("users", ownerID, "budgetItems")
}

func SavedVendorsPath(ownerID string) string {
	return Join("users", ownerID, "myVendors")
}

func ShareSettingsPath(ownerID string) string {
	return Join("users", ownerID, "shareSettings")
}
