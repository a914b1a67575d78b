package get_available_slots

import "errors"

var (
	// ErrMenuNotFound возвращается, когда меню услуги не найдено или отключено
	ErrMenuNotFound = errors.New("service menu not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid reservation date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
