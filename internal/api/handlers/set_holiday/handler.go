package set_holiday

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
	"github.com/piste-boss/piste-reserve/internal/domain"
	holidaysService "github.com/piste-boss/piste-reserve/internal/service/holidays"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/holidays/{date}
// Идемпотентно: повторная отметка той же даты не ошибка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		h.logger.Warn("PUT /holidays/{date} - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Set(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, holidaysService.ErrInvalidInput):
			h.logger.Warn("PUT /holidays/%s - Validation failed: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("PUT /holidays/%s - Failed: %v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /holidays/%s - Marked as holiday", dateStr)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
