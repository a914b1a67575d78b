package list_holidays

import (
	"context"
	"time"

	"github.com/piste-boss/piste-reserve/internal/service/holidays/models"
)

type HolidayService interface {
	List(ctx context.Context, from, to time.Time) (*models.HolidayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
