package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
	"github.com/piste-boss/piste-reserve/internal/domain"
	getAvailableSlots "github.com/piste-boss/piste-reserve/internal/usecase/get_available_slots"
)

const (
	msgDateRequired = "параметр date обязателен, ожидается YYYY-MM-DD"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMenuRequired = "параметр menuId обязателен"
	msgMenuNotFound = "меню не найдено"
	msgPastDate     = "дата уже прошла"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots?date=YYYY-MM-DD&menuId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	menuID := r.URL.Query().Get("menuId")
	if menuID == "" {
		h.logger.Warn("GET /available-slots - Missing menuId parameter")
		handlers.RespondBadRequest(w, msgMenuRequired)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:   date,
		MenuID: menuID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMenuNotFound):
			h.logger.Warn("GET /available-slots - Menu not found: menu_id=%s", menuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Past date: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /available-slots - Failed: date=%s, menu_id=%s, error=%v", dateStr, menuID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - %d slots returned: date=%s, menu_id=%s",
		len(result.Slots), dateStr, menuID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
