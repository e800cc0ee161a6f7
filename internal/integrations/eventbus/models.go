package eventbus

import "time"

const (
	subjectAppointmentCreated       = "appointments.created"
	subjectAppointmentStatusChanged = "appointments.status_changed"
)

// AppointmentCreated событие о новой записи
type AppointmentCreated struct {
	AppointmentID   string    `json:"appointmentId"`
	SalonID         string    `json:"salonId"`
	ClientName      string    `json:"clientName"`
	ClientEmail     string    `json:"clientEmail"`
	ClientPhone     string    `json:"clientPhone"`
	ServiceName     string    `json:"serviceName"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Status          string    `json:"status"`
	OriginalPrice   float64   `json:"originalPrice"`
	FinalPrice      float64   `json:"finalPrice"`
	PromotionName   *string   `json:"promotionName,omitempty"`
	DiscountPercent *int      `json:"discountPercent,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// AppointmentStatusChanged событие о смене статуса записи владельцем
type AppointmentStatusChanged struct {
	AppointmentID string    `json:"appointmentId"`
	SalonID       string    `json:"salonId"`
	ClientEmail   string    `json:"clientEmail"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	OccurredAt    time.Time `json:"occurredAt"`
}
