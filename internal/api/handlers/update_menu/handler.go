package update_menu

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
	menusService "github.com/piste-boss/piste-reserve/internal/service/menus"
	"github.com/piste-boss/piste-reserve/internal/service/menus/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMenu        = "некорректные данные меню"
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

// Handle PUT /api/v1/menus/{menuId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	menuID := vars["menuId"]

	var req models.UpsertMenuRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /menus/%s - Invalid request body: %v", menuID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), menuID, &req)
	if err != nil {
		switch {
		case errors.Is(err, menusService.ErrInvalidInput):
			h.logger.Warn("PUT /menus/%s - Validation failed: %v", menuID, err)
			handlers.RespondBadRequest(w, msgInvalidMenu)

		default:
			h.logger.Error("PUT /menus/%s - Failed: %v", menuID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /menus/%s - Saved successfully", menuID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
