package remove_holiday

import (
	"context"
	"time"
)

type HolidayService interface {
	Remove(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
