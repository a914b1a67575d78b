package menus

import (
	"context"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// MenuRepository интерфейс репозитория меню услуг
type MenuRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceMenu, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.ServiceMenu, error)
	// Upsert создает меню или обновляет существующее по id
	Upsert(ctx context.Context, m *domain.ServiceMenu) (*domain.ServiceMenu, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
