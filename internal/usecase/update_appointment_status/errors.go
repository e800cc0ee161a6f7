package update_appointment_status

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в салоне
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")

	// ErrInvalidTransition возвращается, когда переход статуса не разрешён
	// или статус успели изменить параллельно
	ErrInvalidTransition = errors.New("update_appointment_status: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)

// Результат перехода (лейбл метрики)
const (
	transitionApplied  = "applied"
	transitionRejected = "rejected"
)
