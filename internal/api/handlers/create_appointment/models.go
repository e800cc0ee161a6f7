package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model (форма записи клиента)
type CreateAppointmentRequest struct {
	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone"`
	ServiceID     string `json:"serviceId"`
	Date          string `json:"date"` // "2025-10-15"
	Time          string `json:"time"` // "10:00"
	Notes         string `json:"notes,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	PromotionID   string `json:"promotionId,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	SalonID     uuid.UUID  `json:"salonId"`
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail"`
	ClientPhone string     `json:"clientPhone"`
	ServiceID   *uuid.UUID `json:"serviceId,omitempty"`
	ServiceName string     `json:"serviceName"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes,omitempty"`

	PaymentMethod        *string    `json:"paymentMethod,omitempty"`
	AppliedPromotionID   *uuid.UUID `json:"appliedPromotionId,omitempty"`
	AppliedPromotionName *string    `json:"appliedPromotionName,omitempty"`
	DiscountPercent      *int       `json:"discountPercent,omitempty"`
	OriginalPrice        float64    `json:"originalPrice"`
	FinalPrice           float64    `json:"finalPrice"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Разбор полей формы выполняет use case, чтобы вернуть ошибки по всем полям сразу
func (r *CreateAppointmentRequest) ToUseCaseRequest(salonID uuid.UUID) *createAppointment.Request {
	return &createAppointment.Request{
		SalonID: salonID,
		Form: createAppointment.Form{
			ClientName:    r.ClientName,
			ClientEmail:   r.ClientEmail,
			ClientPhone:   r.ClientPhone,
			ServiceID:     r.ServiceID,
			Date:          r.Date,
			Time:          r.Time,
			Notes:         r.Notes,
			PaymentMethod: r.PaymentMethod,
			PromotionID:   r.PromotionID,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   resp.ID,
		SalonID:              resp.SalonID,
		ClientName:           resp.ClientName,
		ClientEmail:          resp.ClientEmail,
		ClientPhone:          resp.ClientPhone,
		ServiceID:            resp.ServiceID,
		ServiceName:          resp.ServiceName,
		Date:                 resp.Date.Format(domain.DateFormat),
		Time:                 resp.Time.String(),
		Status:               resp.Status,
		Notes:                resp.Notes,
		PaymentMethod:        resp.PaymentMethodName,
		AppliedPromotionID:   resp.AppliedPromotionID,
		AppliedPromotionName: resp.AppliedPromotionName,
		DiscountPercent:      resp.DiscountPercent,
		OriginalPrice:        resp.OriginalPrice,
		FinalPrice:           resp.FinalPrice,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
