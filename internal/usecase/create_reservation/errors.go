package create_reservation

import "errors"

var (
	// ErrMenuNotFound возвращается, когда меню услуги не найдено или отключено
	ErrMenuNotFound = errors.New("service menu not found")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным
	// бронированием
	ErrSlotConflict = errors.New("time slot conflicts with an existing reservation")

	// ErrClosedDay возвращается при попытке записи на закрытый день
	ErrClosedDay = errors.New("the gym is closed on this date")

	// ErrInvalidDate возвращается при дате или времени в прошлом
	ErrInvalidDate = errors.New("invalid reservation date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
