package update_appointment_status

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на смену статуса записи владельцем салона
type Request struct {
	SalonID       uuid.UUID
	AppointmentID uuid.UUID
	Status        string
}

// Response модель ответа после смены статуса
type Response struct {
	ID             uuid.UUID
	SalonID        uuid.UUID
	PreviousStatus string
	Status         string
	UpdatedAt      time.Time
}
