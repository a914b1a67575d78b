package get_available_slots

import (
	"time"

	"github.com/piste-boss/piste-reserve/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date   time.Time // Дата, на которую запрашиваются слоты (без времени)
	MenuID string    // Идентификатор меню: определяет длительность услуги
}

// Response модель ответа со списком доступных времен начала
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	MenuID          string             // Идентификатор меню
	DurationMinutes int                // Длительность услуги в минутах
	Slots           []types.TimeString // Доступные времена начала по возрастанию
}
