package domain

import (
	"time"

	"github.com/piste-boss/piste-reserve/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// SourceChannel identifies where a reservation was created
type SourceChannel string

const (
	SourceWeb          SourceChannel = "web"
	SourceChat         SourceChannel = "chat"
	SourceAdmin        SourceChannel = "admin"
	SourceCalendarSync SourceChannel = "calendar_sync"
)

// Reservation represents a single gym reservation in the system
type Reservation struct {
	ID       int64
	Date     time.Time        // Дата бронирования (без времени)
	Start    types.TimeString // Время начала, "HH:MM"
	End      types.TimeString // Время окончания, хранится денормализованно для быстрых проверок пересечений
	MenuID   string
	Source   SourceChannel
	Status   ReservationStatus

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	// Denormalized menu data for history: the menu's duration may change later,
	// the reservation keeps what was true at creation time
	MenuLabel       string
	DurationMinutes int

	CancelReason *string
	CancelledAt  *time.Time

	LineUserID   *string // Внешний идентификатор LINE-аккаунта для уведомлений
	AccountID    *int64  // Ссылка на зарегистрированный аккаунт клиента
	ReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation has not been cancelled
func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled returns true if the reservation can still be cancelled.
// Cancellation is terminal: a cancelled reservation is never reactivated.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusActive
}

// Range returns the half-open [Start, End) interval of the reservation
func (r *Reservation) Range() TimeRange {
	return TimeRange{Start: r.Start, End: r.End}
}

// TimeRange is a half-open [Start, End) time-of-day interval
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps reports whether two half-open intervals share any duration.
// Touching endpoints do not overlap: a reservation ending at 10:00 does not
// block a new one starting at 10:00.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.IsBefore(other.End) && t.End.IsAfter(other.Start)
}

// ReservationsFilter фильтр для выборки бронирований
type ReservationsFilter struct {
	Date             *time.Time         // Конкретная дата (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *ReservationStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отмененные бронирования
}

// ValidStatuses is the closed set of reservation statuses
var ValidStatuses = []ReservationStatus{
	StatusActive,
	StatusCancelled,
}

// ValidSources is the closed set of reservation source channels
var ValidSources = []SourceChannel{
	SourceWeb,
	SourceChat,
	SourceAdmin,
	SourceCalendarSync,
}

// IsValidStatus reports whether s belongs to the closed status enum
func IsValidStatus(s ReservationStatus) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsValidSource reports whether s belongs to the closed source enum
func IsValidSource(s SourceChannel) bool {
	for _, v := range ValidSources {
		if s == v {
			return true
		}
	}
	return false
}
