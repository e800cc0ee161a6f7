package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение записей салона для панели владельца
type ListAppointmentsRequest struct {
	SalonID         uuid.UUID
	Status          *string    // Фильтр по статусу (опционально)
	Date            *time.Time // Конкретная дата (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	IncludeInactive bool       // Включать отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		SalonID:         r.SalonID,
		Date:            r.Date,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return filter, errors.New("endDate is before startDate")
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	SalonID     uuid.UUID `json:"salonId"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	ClientPhone string    `json:"clientPhone"`

	ServiceID   *uuid.UUID `json:"serviceId,omitempty"`
	ServiceName string     `json:"serviceName"`

	Date   string `json:"date"` // "2025-10-15"
	Time   string `json:"time"` // "10:00"
	Status string `json:"status"`

	Notes             *string `json:"notes,omitempty"`
	PaymentMethodName *string `json:"paymentMethod,omitempty"`

	AppliedPromotionID   *uuid.UUID `json:"appliedPromotionId,omitempty"`
	AppliedPromotionName *string    `json:"appliedPromotionName,omitempty"`
	DiscountPercent      *int       `json:"discountPercent,omitempty"`
	OriginalPrice        float64    `json:"originalPrice"`
	FinalPrice           float64    `json:"finalPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatsResponse сводка для панели владельца
type StatsResponse struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"byStatus"`
	IncomeToday float64        `json:"incomeToday"`
	IncomeMonth float64        `json:"incomeMonth"`
}

// AppointmentListResponse ответ со списком записей и сводкой
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Stats        StatsResponse         `json:"stats"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                   a.ID,
		SalonID:              a.SalonID,
		ClientName:           a.ClientName,
		ClientEmail:          a.ClientEmail,
		ClientPhone:          a.ClientPhone,
		ServiceID:            a.ServiceID,
		ServiceName:          a.ServiceName,
		Date:                 a.Date.Format(domain.DateFormat),
		Time:                 a.Time.String(),
		Status:               string(a.Status),
		Notes:                a.Notes,
		PaymentMethodName:    a.PaymentMethodName,
		AppliedPromotionID:   a.AppliedPromotionID,
		AppliedPromotionName: a.AppliedPromotionName,
		DiscountPercent:      a.DiscountPercent,
		OriginalPrice:        a.OriginalPrice,
		FinalPrice:           a.FinalPrice,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) []AppointmentResponse {
	resp := make([]AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		if appointmentResp := FromDomainAppointment(appointment); appointmentResp != nil {
			resp = append(resp, *appointmentResp)
		}
	}
	return resp
}

// FromDomainCounts конвертирует счётчики по статусам, все статусы присутствуют в ответе
func FromDomainCounts(counts map[domain.AppointmentStatus]int) (map[string]int, int) {
	byStatus := make(map[string]int, len(domain.AllStatuses))
	total := 0
	for _, status := range domain.AllStatuses {
		byStatus[string(status)] = counts[status]
		total += counts[status]
	}
	return byStatus, total
}
