package get_available_slots

import (
	"github.com/piste-boss/piste-reserve/internal/domain"
	getAvailableSlots "github.com/piste-boss/piste-reserve/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`   // "2026-09-15"
	MenuID          string   `json:"menuId"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // ["09:00", "09:20", ...]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		MenuID:          resp.MenuID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
