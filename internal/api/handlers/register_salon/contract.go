package register_salon

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/salons/models"
)

type SalonService interface {
	Register(ctx context.Context, req *models.RegisterSalonRequest) (*models.SalonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
