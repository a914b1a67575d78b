package menus

import (
	"context"
	"fmt"
	"strings"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/internal/service/menus/models"
)

// Service сервис для работы с меню услуг
type Service struct {
	menuRepo MenuRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса меню
func NewService(menuRepo MenuRepository, logger Logger) *Service {
	return &Service{
		menuRepo: menuRepo,
		logger:   logger,
	}
}

// List получает список меню. Публичная выдача скрывает отключенные меню,
// админская (includeInactive) показывает все.
func (s *Service) List(ctx context.Context, includeInactive bool) (*models.MenuListResponse, error) {
	s.logger.Info("List: fetching menus, includeInactive=%t", includeInactive)

	menus, err := s.menuRepo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMenuList(menus), nil
}

// Upsert создает меню или обновляет существующее по идентификатору.
// Длительность нового меню не влияет на уже созданные бронирования:
// их endTime зафиксирован при создании.
func (s *Service) Upsert(ctx context.Context, id string, req *models.UpsertMenuRequest) (*models.MenuResponse, error) {
	s.logger.Info("Upsert: menu id=%s, label=%s, duration=%d", id, req.Label, req.DurationMinutes)

	if err := validateUpsert(id, req); err != nil {
		s.logger.Warn("Upsert: validation failed for menu id=%s: %v", id, err)
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	menu := &domain.ServiceMenu{
		ID:              id,
		Label:           req.Label,
		DurationMinutes: req.DurationMinutes,
		Active:          active,
	}

	saved, err := s.menuRepo.Upsert(ctx, menu)
	if err != nil {
		s.logger.Error("Upsert: repository error for menu id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved menu id=%s", id)
	return models.FromDomainMenu(saved), nil
}

// validateUpsert валидирует входные данные
func validateUpsert(id string, req *models.UpsertMenuRequest) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: menu id is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinMenuDurationMinutes || req.DurationMinutes > domain.MaxMenuDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinMenuDurationMinutes, domain.MaxMenuDurationMinutes)
	}

	return nil
}
