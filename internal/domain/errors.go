package domain

import "errors"

// Sentinel errors returned by the service layer. Role and visibility checks
// fail locally with one of these; the HTTP boundary translates them into
// response codes. A ticket hidden by the visibility rule is reported with
// the same ErrTicketNotFound as an absent one, so existence never leaks.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already in use")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordMismatch     = errors.New("current password is incorrect")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameTaken    = errors.New("category name already in use")
	ErrCategoryInUse        = errors.New("category is referenced by tickets")
	ErrNotificationNotFound = errors.New("notification not found")
)
