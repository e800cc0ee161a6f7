package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetActiveBySalonAndDate получает неотменённые записи салона на дату
	GetActiveBySalonAndDate(ctx context.Context, salonID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
}

// Metrics доменные метрики
type Metrics interface {
	IncSlotLookup(dayStatus string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе салонов
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
