package link_line_account

import (
	"context"

	"github.com/piste-boss/piste-reserve/internal/service/reservations/models"
)

type ReservationService interface {
	LinkLineUser(ctx context.Context, id int64, req *models.LinkLineUserRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
