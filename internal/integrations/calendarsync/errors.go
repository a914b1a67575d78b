package calendarsync

import "errors"

var (
	// ErrForwardFailed возвращается, когда вебхук календаря отклонил событие
	ErrForwardFailed = errors.New("calendarsync: forward failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarsync: internal error")
)
