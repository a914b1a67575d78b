package update_menu

import (
	"context"

	"github.com/piste-boss/piste-reserve/internal/service/menus/models"
)

type MenuService interface {
	Upsert(ctx context.Context, id string, req *models.UpsertMenuRequest) (*models.MenuResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
