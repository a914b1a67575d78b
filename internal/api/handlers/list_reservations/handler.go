package list_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
	"github.com/piste-boss/piste-reserve/internal/domain"
	reservationsService "github.com/piste-boss/piste-reserve/internal/service/reservations"
	"github.com/piste-boss/piste-reserve/internal/service/reservations/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/reservations?date=&startDate=&endDate=&status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListReservationsRequest{}
	query := r.URL.Query()

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid date %q: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if startStr := query.Get("startDate"); startStr != "" {
		start, err := time.ParseInLocation(domain.DateFormat, startStr, time.Local)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid startDate %q: %v", startStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &start
	}

	if endStr := query.Get("endDate"); endStr != "" {
		end, err := time.ParseInLocation(domain.DateFormat, endStr, time.Local)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid endDate %q: %v", endStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &end
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeCancelled = query.Get("includeCancelled") == "true"

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - %d reservations returned", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
