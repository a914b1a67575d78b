package create_reservation

import (
	"errors"
	"net/http"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
	createReservation "github.com/piste-boss/piste-reserve/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotConflict       = "выбранное время уже занято, пожалуйста выберите другое"
	msgMenuNotFound       = "меню не найдено"
	msgClosedDay          = "зал закрыт в выбранную дату"
	msgInvalidDate        = "дата или время бронирования уже прошли"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrMenuNotFound):
			h.logger.Warn("POST /reservations - Menu not found: menu_id=%s", req.MenuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createReservation.ErrClosedDay):
			h.logger.Warn("POST /reservations - Closed day: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Past date or time: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Повторная отправка той же формы возвращает прежнюю запись с 200
	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}

	h.logger.Info("POST /reservations - Reservation committed: id=%d, date=%s, time=%s, already_existed=%t",
		result.ID, req.Date, req.StartTime, result.AlreadyExisted)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
