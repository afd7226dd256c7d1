package planning

import "errors"

var (
	ErrGuestNotFound      = errors.New("guest not found")
	ErrBudgetItemNotFound = errors.New("budget item not found")
	ErrVendorNotFound     = errors.New("saved vendor not found")
	ErrNotShared          = errors.New("dashboard is not published")
	ErrVanityTaken        = errors.New("that vanity URL is already in use")
)
