package update_appointment_status

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByID в транзакции блокирует строку (FOR UPDATE)
	GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Appointment, error)
	// UpdateStatus меняет статус, только если текущий равен from
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus) error
}

// EventPublisher публикует события о записях для сервисов уведомлений
type EventPublisher interface {
	AppointmentStatusChanged(ctx context.Context, appointment *domain.Appointment, from domain.AppointmentStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики
type Metrics interface {
	IncStatusTransition(from, to, result string)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
