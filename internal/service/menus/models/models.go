package models

import (
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// UpsertMenuRequest запрос на создание или обновление меню
type UpsertMenuRequest struct {
	Label           string `json:"label"`
	DurationMinutes int    `json:"durationMinutes"`
	Active          *bool  `json:"active,omitempty"` // nil трактуется как true
}

// MenuResponse ответ с данными меню
type MenuResponse struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	DurationMinutes int       `json:"durationMinutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MenuListResponse ответ со списком меню
type MenuListResponse struct {
	Menus []MenuResponse `json:"menus"`
	Total int            `json:"total"`
}

// FromDomainMenu конвертирует domain модель в response
func FromDomainMenu(m *domain.ServiceMenu) *MenuResponse {
	return &MenuResponse{
		ID:              m.ID,
		Label:           m.Label,
		DurationMinutes: m.DurationMinutes,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomainMenuList конвертирует список domain моделей в response
func FromDomainMenuList(menus []*domain.ServiceMenu) *MenuListResponse {
	out := make([]MenuResponse, 0, len(menus))
	for _, m := range menus {
		out = append(out, *FromDomainMenu(m))
	}
	return &MenuListResponse{Menus: out, Total: len(out)}
}
