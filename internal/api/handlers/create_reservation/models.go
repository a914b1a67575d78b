package create_reservation

import (
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	createReservation "github.com/piste-boss/piste-reserve/internal/usecase/create_reservation"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Date          string  `json:"date"`      // "2026-09-15"
	StartTime     string  `json:"startTime"` // "10:00"
	MenuID        string  `json:"menuId"`
	Source        string  `json:"source,omitempty"` // web | chat | admin | calendar_sync
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	LineUserID    *string `json:"lineUserId,omitempty"`
	AccountID     *int64  `json:"accountId,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MenuID          string `json:"menuId"`
	MenuLabel       string `json:"menuLabel"`
	DurationMinutes int    `json:"durationMinutes"`
	Source          string `json:"source"`
	Status          string `json:"status"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerEmail   string `json:"customerEmail,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, time.Local)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		Date:          date,
		StartTime:     startTime,
		MenuID:        r.MenuID,
		Source:        domain.SourceChannel(r.Source),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		LineUserID:    r.LineUserID,
		AccountID:     r.AccountID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		MenuID:          resp.MenuID,
		MenuLabel:       resp.MenuLabel,
		DurationMinutes: resp.DurationMinutes,
		Source:          resp.Source,
		Status:          resp.Status,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		CustomerEmail:   resp.CustomerEmail,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
