package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	menuRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/menu"
	reservationRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/reservation"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	menuRepo        MenuRepository
	holidayRepo     HolidayRepository
	hours           domain.BusinessHours
	txManager       TransactionManager
	dispatcher      EventDispatcher
	slotCache       SlotCacheInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. dispatcher и slotCache
// могут быть nil.
func NewUseCase(
	reservationRepo ReservationRepository,
	menuRepo MenuRepository,
	holidayRepo HolidayRepository,
	hours domain.BusinessHours,
	txManager TransactionManager,
	dispatcher EventDispatcher,
	slotCache SlotCacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		menuRepo:        menuRepo,
		holidayRepo:     holidayRepo,
		hours:           hours,
		txManager:       txManager,
		dispatcher:      dispatcher,
		slotCache:       slotCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка идут в сериализуемой транзакции: два
// конкурентных запроса на один слот не могут закоммититься оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: menu=%s, date=%s, time=%s, customer=%s",
		req.MenuID, req.Date.Format(domain.DateFormat), req.StartTime, req.CustomerName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата и время не могут быть в прошлом
	if err := uc.validateNotInPast(req, now); err != nil {
		return nil, err
	}

	// 3. Получаем меню: его длительность авторитетна, endTime всегда
	// пересчитывается здесь и никогда не принимается от клиента
	menu, err := uc.menuRepo.GetByID(ctx, req.MenuID)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuNotFound) {
			uc.logger.Warn("CreateReservation: menu %s not found", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("CreateReservation: failed to get menu %s: %v", req.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}
	if !menu.IsBookable() {
		uc.logger.Warn("CreateReservation: menu %s is not bookable", req.MenuID)
		return nil, ErrMenuNotFound
	}

	endTime, err := req.StartTime.AddMinutes(menu.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateReservation: slot %s + %d min passes midnight", req.StartTime, menu.DurationMinutes)
		return nil, fmt.Errorf("%w: startTime too late for menu duration", ErrInvalidInput)
	}

	// 4. Закрытый день недели или праздник
	if uc.hours.IsClosedWeekday(req.Date.Weekday()) {
		uc.logger.Warn("CreateReservation: %s falls on a closed weekday", req.Date.Format(domain.DateFormat))
		return nil, ErrClosedDay
	}

	closed, err := uc.holidayRepo.IsClosed(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to check holiday: %v", err)
		return nil, fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
	}
	if closed {
		uc.logger.Warn("CreateReservation: %s is a holiday", req.Date.Format(domain.DateFormat))
		return nil, ErrClosedDay
	}

	source := req.Source
	if source == "" {
		source = domain.SourceWeb
	}

	var result *domain.Reservation
	alreadyExisted := false

	// 5. Проверка дубликата, пересечений и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Повторная отправка той же формы возвращает прежнюю запись
		duplicate, err := uc.reservationRepo.FindDuplicate(txCtx, req.Date, req.StartTime, req.CustomerName)
		if err != nil && !errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Error("CreateReservation: failed to check duplicate: %v", err)
			return fmt.Errorf("%w: failed to check duplicate: %w", ErrInternal, err)
		}
		if duplicate != nil {
			uc.logger.Info("CreateReservation: duplicate submission, returning reservation id=%d", duplicate.ID)
			result = duplicate
			alreadyExisted = true
			return nil
		}

		// 5.2. Активные бронирования читаются заново под блокировкой:
		// список слотов, который видел клиент, мог устареть
		existing, err := uc.reservationRepo.GetActiveByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 5.3. Пересечение по правилу полуоткрытых интервалов
		candidate := domain.TimeRange{Start: req.StartTime, End: endTime}
		for _, other := range existing {
			if candidate.Overlaps(other.Range()) {
				uc.logger.Warn("CreateReservation: slot %s-%s conflicts with reservation id=%d",
					req.StartTime, endTime, other.ID)
				return ErrSlotConflict
			}
		}

		// 5.4. Сохраняем бронирование с денормализацией данных меню
		reservation := &domain.Reservation{
			Date:            req.Date,
			Start:           req.StartTime,
			End:             endTime,
			MenuID:          menu.ID,
			MenuLabel:       menu.Label,
			DurationMinutes: menu.DurationMinutes,
			Source:          source,
			Status:          domain.StatusActive,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   req.CustomerEmail,
			LineUserID:      req.LineUserID,
			AccountID:       req.AccountID,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if !alreadyExisted {
		uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)
		uc.afterCommit(ctx, result, now)
	}

	return toResponse(result, alreadyExisted), nil
}

// afterCommit выполняет побочные эффекты после фиксации транзакции:
// уведомления и сброс кэша. Ошибки здесь не откатывают бронирование.
func (uc *UseCase) afterCommit(ctx context.Context, res *domain.Reservation, now time.Time) {
	if uc.slotCache != nil {
		if err := uc.slotCache.InvalidateDate(ctx, res.Date); err != nil {
			uc.logger.Warn("CreateReservation: failed to invalidate slot cache: %v", err)
		}
	}

	if uc.dispatcher != nil {
		event := domain.NewNotificationEvent(domain.EventReservationCreated, domain.SnapshotOf(res), now)
		uc.dispatcher.Dispatch(event)
	}
}

// validateNotInPast отклоняет даты в прошлом и сегодняшние времена
// раньше текущего
func (uc *UseCase) validateNotInPast(req *Request, now time.Time) error {
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return ErrInvalidDate
	}

	if isSameDay(req.Date, now) && req.StartTime.IsBefore(types.NewTimeString(now)) {
		uc.logger.Warn("CreateReservation: time %s already passed today", req.StartTime)
		return ErrInvalidDate
	}

	return nil
}

func toResponse(res *domain.Reservation, alreadyExisted bool) *Response {
	return &Response{
		ID:              res.ID,
		Date:            res.Date,
		StartTime:       res.Start,
		EndTime:         res.End,
		MenuID:          res.MenuID,
		MenuLabel:       res.MenuLabel,
		DurationMinutes: res.DurationMinutes,
		Source:          string(res.Source),
		Status:          string(res.Status),
		CustomerName:    res.CustomerName,
		CustomerPhone:   res.CustomerPhone,
		CustomerEmail:   res.CustomerEmail,
		CreatedAt:       res.CreatedAt,
		AlreadyExisted:  alreadyExisted,
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
