package linemessaging

// pushRequest тело запроса к /v2/bot/message/push
type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// textMessage текстовое сообщение LINE
type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
