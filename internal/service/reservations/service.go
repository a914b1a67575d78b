package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/piste-boss/piste-reserve/internal/domain"
	reservationRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/reservation"
	"github.com/piste-boss/piste-reserve/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	dispatcher      EventDispatcher
	slotCache       SlotCacheInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// dispatcher и slotCache могут быть nil.
func NewService(
	reservationRepo ReservationRepository,
	dispatcher EventDispatcher,
	slotCache SlotCacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		dispatcher:      dispatcher,
		slotCache:       slotCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// List получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по дате, периоду, статусу и включению отмененных
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := "List: fetching reservations"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет активное бронирование. Отмена мягкая и терминальная:
// запись не удаляется, повторная отмена невозможна.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	if err := validateCancelReason(req.CancelReason); err != nil {
		s.logger.Warn("Cancel: validation failed for reservation id=%d: %v", id, err)
		return err
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d is already cancelled", id)
		return ErrAlreadyCancelled
	}

	// Снимок до перехода статуса: получатели уведомления должны видеть,
	// что именно было отменено
	snapshot := domain.SnapshotOf(reservation)
	snapshot.CancelReason = req.CancelReason

	if err := s.reservationRepo.Cancel(ctx, id, req.CancelReason); err != nil {
		if errors.Is(err, reservationRepo.ErrAlreadyCancelled) {
			s.logger.Warn("Cancel: reservation id=%d cancelled concurrently", id)
			return ErrAlreadyCancelled
		}
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)

	if s.slotCache != nil {
		if err := s.slotCache.InvalidateDate(ctx, reservation.Date); err != nil {
			s.logger.Warn("Cancel: failed to invalidate slot cache: %v", err)
		}
	}

	if s.dispatcher != nil {
		event := domain.NewNotificationEvent(domain.EventReservationCancelled, snapshot, s.timeProvider.Now())
		s.dispatcher.Dispatch(event)
	}

	return nil
}

// LinkLineUser привязывает LINE-аккаунт к существующему бронированию.
// Привязка выполняется постфактум, когда клиент открывает LIFF-страницу
// подтверждения.
func (s *Service) LinkLineUser(ctx context.Context, id int64, req *models.LinkLineUserRequest) (*models.ReservationResponse, error) {
	s.logger.Info("LinkLineUser: linking reservation id=%d", id)

	if strings.TrimSpace(req.LineUserID) == "" {
		s.logger.Warn("LinkLineUser: empty lineUserId for reservation id=%d", id)
		return nil, fmt.Errorf("%w: lineUserId is required", ErrInvalidInput)
	}

	if err := s.reservationRepo.SetLineUserID(ctx, id, req.LineUserID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("LinkLineUser: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("LinkLineUser: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: LinkLineUser - repository error: %v", ErrInternal, err)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("LinkLineUser: failed to reread reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: LinkLineUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("LinkLineUser: successfully linked reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// validateCancelReason проверяет длину причины отмены
func validateCancelReason(reason *string) error {
	if reason == nil {
		return nil
	}
	if len(*reason) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: cancelReason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}
	return nil
}
