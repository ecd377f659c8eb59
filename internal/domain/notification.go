package domain

import "time"

// Notification is a per-user mailbox entry. Rows are created only by the
// system; callers may merely list and mark their own entries as read.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
