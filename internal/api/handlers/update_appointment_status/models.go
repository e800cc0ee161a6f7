package update_appointment_status

import (
	"time"

	"github.com/google/uuid"

	updateStatus "github.com/m04kA/SMC-SalonService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	ID             uuid.UUID `json:"id"`
	SalonID        uuid.UUID `json:"salonId"`
	PreviousStatus string    `json:"previousStatus"`
	Status         string    `json:"status"`
	UpdatedAt      string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(salonID, appointmentID uuid.UUID) *updateStatus.Request {
	return &updateStatus.Request{
		SalonID:       salonID,
		AppointmentID: appointmentID,
		Status:        r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *StatusResponse {
	return &StatusResponse{
		ID:             resp.ID,
		SalonID:        resp.SalonID,
		PreviousStatus: resp.PreviousStatus,
		Status:         resp.Status,
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
