package list_holidays

import (
	"errors"
	"net/http"
	"time"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
	"github.com/piste-boss/piste-reserve/internal/domain"
	holidaysService "github.com/piste-boss/piste-reserve/internal/service/holidays"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod = "некорректный период"
)

// defaultPeriodDays период выдачи по умолчанию, когда границы не заданы
const defaultPeriodDays = 365

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

// Handle GET /api/v1/holidays?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, defaultPeriodDays)

	if fromStr := query.Get("from"); fromStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, fromStr, time.Local)
		if err != nil {
			h.logger.Warn("GET /holidays - Invalid from %q: %v", fromStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		from = parsed
	}

	if toStr := query.Get("to"); toStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, toStr, time.Local)
		if err != nil {
			h.logger.Warn("GET /holidays - Invalid to %q: %v", toStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		to = parsed
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, holidaysService.ErrInvalidInput):
			h.logger.Warn("GET /holidays - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /holidays - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /holidays - %d holidays returned", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
