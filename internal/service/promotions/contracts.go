package promotions

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// PromotionRepository интерфейс репозитория акций
type PromotionRepository interface {
	Create(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	Update(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Promotion, error)
	ListBySalon(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]*domain.Promotion, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
