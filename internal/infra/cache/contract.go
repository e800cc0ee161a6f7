package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// SalonRepository источник данных о салонах
type SalonRepository interface {
	Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, schedule domain.WeeklySchedule) error
}

// Metrics счётчики попаданий в кеш
type Metrics interface {
	IncCache(cache, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
