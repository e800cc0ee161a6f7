package create_appointment

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_appointment: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrSalonClosed возвращается, когда салон не работает в указанную дату
	ErrSalonClosed = errors.New("create_appointment: salon is closed on this date")

	// ErrConfigurationIncomplete возвращается, когда день рабочий, но смены не настроены
	ErrConfigurationIncomplete = errors.New("create_appointment: salon schedule is incomplete for this date")

	// ErrInvalidTimeSlot возвращается, когда время не входит в слоты дня
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotInPast возвращается, когда слот сегодняшнего дня уже прошёл
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrSlotUnavailable возвращается, когда слот занят другой записью
	ErrSlotUnavailable = errors.New("create_appointment: slot no longer available")

	// ErrInvalidInput возвращается при некорректных данных формы
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// Этапы, на которых обнаружен конфликт слота (лейбл метрики)
const (
	conflictStagePrecheck      = "precheck"
	conflictStageUniqueIndex   = "unique_index"
	conflictStageSerialization = "serialization"
)

// Исход применения акции (лейбл метрики)
const (
	promotionApplied  = "applied"
	promotionFallback = "fallback"
)
