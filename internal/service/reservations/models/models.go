package models

import (
	"errors"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	CancelReason *string `json:"cancelReason,omitempty"`
}

// LinkLineUserRequest запрос на привязку LINE-аккаунта
type LinkLineUserRequest struct {
	LineUserID string `json:"lineUserId"`
	AccountID  *int64 `json:"accountId,omitempty"`
}

// ListReservationsRequest запрос на выборку бронирований
type ListReservationsRequest struct {
	Date             *time.Time `json:"date,omitempty"`             // Конкретная дата (опционально)
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включать отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		Date:             r.Date,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status := domain.ReservationStatus(*r.Status)
		if !domain.IsValidStatus(status) {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64      `json:"id"`
	Date            string     `json:"date"`      // "2026-09-15"
	StartTime       string     `json:"startTime"` // "10:00"
	EndTime         string     `json:"endTime"`   // "11:00"
	MenuID          string     `json:"menuId"`
	MenuLabel       string     `json:"menuLabel"`
	DurationMinutes int        `json:"durationMinutes"`
	Source          string     `json:"source"`
	Status          string     `json:"status"`
	CustomerName    string     `json:"customerName"`
	CustomerPhone   string     `json:"customerPhone"`
	CustomerEmail   string     `json:"customerEmail"`
	CancelReason    *string    `json:"cancelReason,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	LineUserID      *string    `json:"lineUserId,omitempty"`
	AccountID       *int64     `json:"accountId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              r.ID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.Start.String(),
		EndTime:         r.End.String(),
		MenuID:          r.MenuID,
		MenuLabel:       r.MenuLabel,
		DurationMinutes: r.DurationMinutes,
		Source:          string(r.Source),
		Status:          string(r.Status),
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		CancelReason:    r.CancelReason,
		CancelledAt:     r.CancelledAt,
		LineUserID:      r.LineUserID,
		AccountID:       r.AccountID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, *FromDomainReservation(r))
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}
