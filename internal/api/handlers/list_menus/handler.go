package list_menus

import (
	"net/http"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
)

type Handler struct {
	service MenuService
	logger  Logger
}

func NewHandler(service MenuService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/menus
// Публичная выдача: только активные меню
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), false)
	if err != nil {
		h.logger.Error("GET /menus - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /menus - %d menus returned", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
