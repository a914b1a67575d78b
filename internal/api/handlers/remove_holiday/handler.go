package remove_holiday

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
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgHolidayNotFound = "дата не отмечена как выходной"
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

// Handle DELETE /api/v1/holidays/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		h.logger.Warn("DELETE /holidays/{date} - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Remove(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, holidaysService.ErrHolidayNotFound):
			h.logger.Warn("DELETE /holidays/%s - Not found", dateStr)
			handlers.RespondNotFound(w, msgHolidayNotFound)

		default:
			h.logger.Error("DELETE /holidays/%s - Failed: %v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holidays/%s - Unmarked", dateStr)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
