package create_reservation

import (
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date      time.Time            // Дата бронирования (без времени)
	StartTime types.TimeString     // Время начала
	MenuID    string               // Идентификатор меню
	Source    domain.SourceChannel // Канал создания; пустое значение трактуется как web

	CustomerName  string // Имя клиента
	CustomerPhone string // Телефон клиента
	CustomerEmail string // Email клиента (опционально)

	LineUserID *string // Привязанный LINE-аккаунт (опционально)
	AccountID  *int64  // Привязанный аккаунт клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	MenuID          string
	MenuLabel       string
	DurationMinutes int
	Source          string
	Status          string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	CreatedAt       time.Time

	// AlreadyExisted признак, что запрос оказался повторной отправкой и
	// вернулось ранее созданное бронирование
	AlreadyExisted bool
}
