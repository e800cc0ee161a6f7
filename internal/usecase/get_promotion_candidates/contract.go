package get_promotion_candidates

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Service, error)
}

// PromotionRepository интерфейс репозитория акций
type PromotionRepository interface {
	ListBySalon(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]*domain.Promotion, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
