package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// allowedTransitions переходы, которые может выполнить владелец салона
// completed и cancelled - терминальные состояния
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// IsValid returns true if the status is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no transition can leave the status
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo returns true if the owner may move an appointment from s to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s.IsTerminal() {
		return false
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseAppointmentStatus конвертирует строку в AppointmentStatus с валидацией
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// Appointment represents a client booking at a salon
// Price, service and promotion fields are a snapshot taken at booking time
type Appointment struct {
	ID      uuid.UUID
	SalonID uuid.UUID

	ClientName  string
	ClientEmail string
	ClientPhone string

	// Snapshot of the booked service
	ServiceID   *uuid.UUID
	ServiceName string

	Date   time.Time        // calendar date, time part is zero
	Time   types.TimeString // chosen slot
	Status AppointmentStatus

	Notes             *string
	PaymentMethodName *string

	// Snapshot of the applied promotion
	AppliedPromotionID   *uuid.UUID
	AppliedPromotionName *string
	DiscountPercent      *int
	OriginalPrice        float64
	FinalPrice           float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// HasPromotion returns true if a promotion was applied at booking time
func (a *Appointment) HasPromotion() bool {
	return a.AppliedPromotionID != nil
}

// TransitionTo moves the appointment to next status
// On rejection the appointment is left untouched
func (a *Appointment) TransitionTo(next AppointmentStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, a.Status, next)
	}
	a.Status = next
	return nil
}

// AppointmentsFilter фильтр для получения записей салона
type AppointmentsFilter struct {
	SalonID         uuid.UUID          // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
	ForUpdate       bool               // Блокировать строки (FOR UPDATE), только в read-write транзакции
}
