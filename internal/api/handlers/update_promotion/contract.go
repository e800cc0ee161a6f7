package update_promotion

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/service/promotions/models"
)

type PromotionService interface {
	Update(ctx context.Context, salonID, id uuid.UUID, req *models.UpdatePromotionRequest) (*models.PromotionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
