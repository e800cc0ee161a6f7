package create_promotion

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/service/promotions/models"
)

type PromotionService interface {
	Create(ctx context.Context, salonID uuid.UUID, req *models.CreatePromotionRequest) (*models.PromotionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
