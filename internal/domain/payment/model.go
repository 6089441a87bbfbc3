package payment

import "time"

// Record tracks how many of a user's submitted teams have been paid
// for. One record per user, upserted by the admin console.
type Record struct {
	UserID    int64
	TeamsPaid int
	Notes     string
	UpdatedAt time.Time
}
