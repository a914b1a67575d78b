package domain

import "time"

// ServiceMenu represents a bookable service (training menu).
// Referenced by reservations, never owned by them.
type ServiceMenu struct {
	ID              string // Стабильный идентификатор-слаг, например "personal-60"
	Label           string
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable returns true if the menu can be used for new reservations
func (m *ServiceMenu) IsBookable() bool {
	return m.Active && m.DurationMinutes > 0
}
