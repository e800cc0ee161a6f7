package update_appointment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
)

// UseCase use case для смены статуса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	publisher       EventPublisher
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		publisher:       publisher,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса
// Запрещённый переход не меняет запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointmentStatus: salon=%s, appointment=%s, status=%s",
		req.SalonID, req.AppointmentID, req.Status)

	// 1. Валидация входных данных
	if req.SalonID == uuid.Nil || req.AppointmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: salonID and appointmentID are required", ErrInvalidInput)
	}

	next, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var (
		appointment *domain.Appointment
		from        domain.AppointmentStatus
	)

	// 2. Читаем запись с блокировкой и меняем статус условным UPDATE
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, req.SalonID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%s not found in salon id=%s",
					req.AppointmentID, req.SalonID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		from = current.Status
		if err := current.TransitionTo(next); err != nil {
			uc.metrics.IncStatusTransition(string(from), string(next), transitionRejected)
			uc.logger.Warn("UpdateAppointmentStatus: %v", err)
			return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, current.ID, from, next); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusChanged) {
				uc.metrics.IncStatusTransition(string(from), string(next), transitionRejected)
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%s changed concurrently", current.ID)
				return fmt.Errorf("%w: %w", ErrInvalidTransition, domain.ErrInvalidStatusTransition)
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to update appointment id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		current.UpdatedAt = uc.timeProvider.Now()
		appointment = current
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("UpdateAppointmentStatus: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncStatusTransition(string(from), string(next), transitionApplied)
	uc.logger.Info("UpdateAppointmentStatus: appointment id=%s %s -> %s", appointment.ID, from, next)

	// 3. Событие для уведомлений, ошибка публикации не ломает запрос
	if err := uc.publisher.AppointmentStatusChanged(ctx, appointment, from); err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: failed to publish event for appointment id=%s: %v", appointment.ID, err)
	}

	return &Response{
		ID:             appointment.ID,
		SalonID:        appointment.SalonID,
		PreviousStatus: string(from),
		Status:         string(appointment.Status),
		UpdatedAt:      appointment.UpdatedAt,
	}, nil
}
