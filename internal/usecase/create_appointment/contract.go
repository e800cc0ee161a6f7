package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	// ListActiveForUpdate блокирует неотменённые записи на дату (FOR UPDATE)
	ListActiveForUpdate(ctx context.Context, salonID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Service, error)
}

// PromotionRepository интерфейс репозитория акций
type PromotionRepository interface {
	ListBySalon(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]*domain.Promotion, error)
}

// EventPublisher публикует события о записях для сервисов уведомлений
type EventPublisher interface {
	AppointmentCreated(ctx context.Context, appointment *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики
type Metrics interface {
	IncAppointmentCreated(withPromotion bool)
	IncBookingConflict(stage string)
	IncPromotion(result string)
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
