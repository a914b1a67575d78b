package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	menuRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/menu"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	menuRepo        MenuRepository
	holidayRepo     HolidayRepository
	hours           domain.BusinessHours
	slotCache       SlotCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. slotCache может быть nil.
func NewUseCase(
	reservationRepo ReservationRepository,
	menuRepo MenuRepository,
	holidayRepo HolidayRepository,
	hours domain.BusinessHours,
	slotCache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		menuRepo:        menuRepo,
		holidayRepo:     holidayRepo,
		hours:           hours,
		slotCache:       slotCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: menu=%s, date=%s", req.MenuID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Получаем меню: его длительность определяет границы кандидата
	menu, err := uc.menuRepo.GetByID(ctx, req.MenuID)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuNotFound) {
			uc.logger.Warn("GetAvailableSlots: menu %s not found", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get menu %s: %v", req.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}
	if !menu.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: menu %s is not bookable", req.MenuID)
		return nil, ErrMenuNotFound
	}

	// 3. Закрытый день недели или праздник: слотов нет независимо от броней
	if uc.hours.IsClosedWeekday(req.Date.Weekday()) {
		uc.logger.Info("GetAvailableSlots: %s falls on a closed weekday", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, menu), nil
	}

	closed, err := uc.holidayRepo.IsClosed(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check holiday: %v", err)
		return nil, fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
	}
	if closed {
		uc.logger.Info("GetAvailableSlots: %s is a holiday", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, menu), nil
	}

	// 4. Генерируем кандидатов с учетом отсечки по текущему времени
	candidates, err := generateCandidateTimes(uc.hours, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 5. Получаем занятые интервалы активных бронирований
	ranges, err := uc.getActiveRanges(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Отфильтровываем пересечения
	slots := filterAdmissible(candidates, menu.DurationMinutes, ranges)

	uc.logger.Info("GetAvailableSlots: %d of %d candidates admissible for menu=%s, date=%s",
		len(slots), len(candidates), req.MenuID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		MenuID:          menu.ID,
		DurationMinutes: menu.DurationMinutes,
		Slots:           slots,
	}, nil
}

// getActiveRanges читает занятые интервалы через кэш, при промахе или
// недоступности кэша - напрямую из хранилища
func (uc *UseCase) getActiveRanges(ctx context.Context, date time.Time) ([]domain.TimeRange, error) {
	if uc.slotCache != nil {
		ranges, err := uc.slotCache.GetActiveRanges(ctx, date)
		if err == nil {
			return ranges, nil
		}
		// Промах и ошибка кэша равнозначны: идем в хранилище
	}

	reservations, err := uc.reservationRepo.GetActiveByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	ranges := activeRanges(reservations)

	if uc.slotCache != nil {
		if err := uc.slotCache.SetActiveRanges(ctx, date, ranges); err != nil {
			uc.logger.Warn("GetAvailableSlots: failed to populate slot cache: %v", err)
		}
	}

	return ranges, nil
}

func (uc *UseCase) emptyResponse(req *Request, menu *domain.ServiceMenu) *Response {
	return &Response{
		Date:            req.Date,
		MenuID:          menu.ID,
		DurationMinutes: menu.DurationMinutes,
		Slots:           []types.TimeString{},
	}
}
