package domain

import "time"

// Holiday is a calendar date marked fully closed by an administrator.
// The slot generator produces no candidates for such a date.
type Holiday struct {
	Date      time.Time
	CreatedAt time.Time
}
