package holidays

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	holidayRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/holiday"
	"github.com/piste-boss/piste-reserve/internal/service/holidays/models"
)

// Service сервис для работы с выходными днями зала
type Service struct {
	holidayRepo HolidayRepository
	slotCache   SlotCacheInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса выходных. slotCache может быть nil.
func NewService(holidayRepo HolidayRepository, slotCache SlotCacheInvalidator, logger Logger) *Service {
	return &Service{
		holidayRepo: holidayRepo,
		slotCache:   slotCache,
		logger:      logger,
	}
}

// List получает выходные дни за период
func (s *Service) List(ctx context.Context, from, to time.Time) (*models.HolidayListResponse, error) {
	s.logger.Info("List: fetching holidays from %s to %s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if to.Before(from) {
		s.logger.Warn("List: invalid period")
		return nil, fmt.Errorf("%w: period end before start", ErrInvalidInput)
	}

	holidays, err := s.holidayRepo.List(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHolidayList(holidays), nil
}

// Set отмечает дату как выходной. Существующие бронирования на эту дату
// не отменяются автоматически, но новые слоты на нее не выдаются.
func (s *Service) Set(ctx context.Context, date time.Time) error {
	s.logger.Info("Set: marking %s as holiday", date.Format(domain.DateFormat))

	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.holidayRepo.Add(ctx, date); err != nil {
		s.logger.Error("Set: repository error for %s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: Set - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, date)
	return nil
}

// Remove снимает отметку выходного с даты
func (s *Service) Remove(ctx context.Context, date time.Time) error {
	s.logger.Info("Remove: unmarking holiday %s", date.Format(domain.DateFormat))

	if err := s.holidayRepo.Remove(ctx, date); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Remove: %s is not a holiday", date.Format(domain.DateFormat))
			return ErrHolidayNotFound
		}
		s.logger.Error("Remove: repository error for %s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, date)
	return nil
}

func (s *Service) invalidate(ctx context.Context, date time.Time) {
	if s.slotCache == nil {
		return
	}
	if err := s.slotCache.InvalidateDate(ctx, date); err != nil {
		s.logger.Warn("failed to invalidate slot cache for %s: %v", date.Format(domain.DateFormat), err)
	}
}
