package models

import (
	"github.com/piste-boss/piste-reserve/internal/domain"
)

// HolidayResponse ответ с данными выходного дня
type HolidayResponse struct {
	Date string `json:"date"` // "2026-12-31"
}

// HolidayListResponse ответ со списком выходных дней
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
	Total    int               `json:"total"`
}

// FromDomainHolidayList конвертирует список domain моделей в response
func FromDomainHolidayList(holidays []*domain.Holiday) *HolidayListResponse {
	out := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, HolidayResponse{Date: h.Date.Format(domain.DateFormat)})
	}
	return &HolidayListResponse{Holidays: out, Total: len(out)}
}
