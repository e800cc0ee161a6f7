package list_promotions

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/service/promotions/models"
)

type PromotionService interface {
	List(ctx context.Context, salonID uuid.UUID) (*models.PromotionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
