package validation

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// VanityPattern defines the valid vanity URL format: lowercase alphanumeric and hyphens,
// not starting or ending with a hyphen.
var VanityPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// ShareCodePattern matches a normalized share code.
var ShareCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

const (
	MinVanityLength  = 3
	MaxVanityLength  = 60
	MinBudgetNameLen = 2
	MaxNameLength    = 120
	MaxNotesLength   = 2000
	ShareCodeLength  = 6
)

// MaxBudgetAmount caps a single budgeted or spent amount.
const MaxBudgetAmount = 1e12

// NormalizeVanityURL lowercases and trims a vanity URL so lookups are case-insensitive.
func NormalizeVanityURL(vanity string) string {
	return strings.ToLower(strings.TrimSpace(vanity))
}

// ValidateVanityURL checks a normalized vanity URL.
func ValidateVanityURL(vanity string) (bool, string) {
	if vanity == "" {
		return false, "Vanity URL is required"
	}
	if len(vanity) < MinVanityLength || len(vanity) > MaxVanityLength {
		return false, "Vanity URL must be between 3 and 60 characters"
	}
	if !VanityPattern.MatchString(vanity) {
		return false, "Vanity URL may only contain lowercase letters, numbers, and hyphens"
	}
	return true, ""
}

// NormalizeShareCode upper-cases and trims a submitted share code.
func NormalizeShareCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateShareCode reports whether a normalized code has the stored format.
func ValidateShareCode(code string) bool {
	return ShareCodePattern.MatchString(code)
}

// ValidateGuestName checks a guest's display name.
func ValidateGuestName(name string) (bool, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, "Guest name is required"
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return false, "Guest name is too long"
	}
	return true, ""
}

// ValidateBudgetItem checks a budget line before it is stored.
func ValidateBudgetItem(name string, budget, spent float64) (bool, string) {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinBudgetNameLen {
		return false, "Category name must be at least 2 characters"
	}
	if n > MaxNameLength {
		return false, "Category name is too long"
	}
	if math.IsNaN(budget) || math.IsNaN(spent) || budget < 0 || spent < 0 {
		return false, "Amounts cannot be negative"
	}
	if budget > MaxBudgetAmount || spent > MaxBudgetAmount {
		return false, "Amounts cannot exceed 1,000,000,000,000"
	}
	return true, ""
}

// ValidateNotes checks optional free text.
func ValidateNotes(notes string) (bool, string) {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return false, "Notes are too long"
	}
	return true, ""
}

// ValidateRecordID checks an opaque identifier used as a path segment.
func ValidateRecordID(id string) bool {
	if id == "" || len(id) > 100 {
		return false
	}
	return !strings.ContainsAny(id, "/\\") && id != "." && id != ".."
}
