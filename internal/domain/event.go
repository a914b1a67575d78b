package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/piste-boss/piste-reserve/pkg/types"
)

// EventKind is the kind of a notification event
type EventKind string

const (
	EventReservationCreated   EventKind = "created"
	EventReservationCancelled EventKind = "cancelled"
)

// ReservationSnapshot is the immutable view of a reservation handed to the
// notification dispatcher. For cancellations it is taken BEFORE the status
// transition, so downstream consumers can describe what was cancelled.
type ReservationSnapshot struct {
	ReservationID int64            `json:"reservationId"`
	Date          string           `json:"date"` // YYYY-MM-DD
	Start         types.TimeString `json:"startTime"`
	End           types.TimeString `json:"endTime"`
	MenuID        string           `json:"menuId"`
	MenuLabel     string           `json:"menuLabel"`
	Source        SourceChannel    `json:"source"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	CustomerEmail string           `json:"customerEmail"`
	LineUserID    *string          `json:"lineUserId,omitempty"`
	CancelReason  *string          `json:"cancelReason,omitempty"`
}

// NotificationEvent is delivered to every configured notification sink.
// Delivery is at-least-once; the event ID lets consumers deduplicate.
type NotificationEvent struct {
	ID          string              `json:"id"`
	Kind        EventKind           `json:"kind"`
	Reservation ReservationSnapshot `json:"reservation"`
	OccurredAt  time.Time           `json:"occurredAt"`
}

// NewNotificationEvent создает событие с уникальным идентификатором
func NewNotificationEvent(kind EventKind, snapshot ReservationSnapshot, now time.Time) NotificationEvent {
	return NotificationEvent{
		ID:          uuid.NewString(),
		Kind:        kind,
		Reservation: snapshot,
		OccurredAt:  now,
	}
}

// SnapshotOf builds a snapshot from the current state of r
func SnapshotOf(r *Reservation) ReservationSnapshot {
	return ReservationSnapshot{
		ReservationID: r.ID,
		Date:          r.Date.Format(DateFormat),
		Start:         r.Start,
		End:           r.End,
		MenuID:        r.MenuID,
		MenuLabel:     r.MenuLabel,
		Source:        r.Source,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		LineUserID:    r.LineUserID,
		CancelReason:  r.CancelReason,
	}
}
