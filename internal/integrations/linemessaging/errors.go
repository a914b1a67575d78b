package linemessaging

import "errors"

var (
	// ErrPushFailed возвращается, когда LINE API отклонил отправку сообщения
	ErrPushFailed = errors.New("linemessaging: push message failed")

	// ErrInvalidResponse возвращается при неожиданном ответе LINE API
	ErrInvalidResponse = errors.New("linemessaging: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("linemessaging: internal error")
)
