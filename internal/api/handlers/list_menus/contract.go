package list_menus

import (
	"context"

	"github.com/piste-boss/piste-reserve/internal/service/menus/models"
)

type MenuService interface {
	List(ctx context.Context, includeInactive bool) (*models.MenuListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
