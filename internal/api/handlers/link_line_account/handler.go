package link_line_account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
	reservationsService "github.com/piste-boss/piste-reserve/internal/service/reservations"
	"github.com/piste-boss/piste-reserve/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный идентификатор бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgLineUserIDRequired   = "поле lineUserId обязательно"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/line-link
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/line-link - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.LinkLineUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/%d/line-link - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.LinkLineUser(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/%d/line-link - Reservation not found", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("POST /reservations/%d/line-link - Validation failed: %v", id, err)
			handlers.RespondBadRequest(w, msgLineUserIDRequired)

		default:
			h.logger.Error("POST /reservations/%d/line-link - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/%d/line-link - Linked successfully", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
