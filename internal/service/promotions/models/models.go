package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreatePromotionRequest запрос на создание акции
// Для kind=service заполняется ServiceIDs, для kind=weekday - Weekdays (0 = воскресенье)
type CreatePromotionRequest struct {
	Name            string      `json:"name"`
	Description     *string     `json:"description,omitempty"`
	Kind            string      `json:"kind"`
	DiscountPercent int         `json:"discountPercent"`
	ServiceIDs      []uuid.UUID `json:"serviceIds,omitempty"`
	Weekdays        []int       `json:"weekdays,omitempty"`
	Active          *bool       `json:"active,omitempty"` // по умолчанию true
}

// ToDomain конвертирует запрос в domain модель
func (r *CreatePromotionRequest) ToDomain(salonID uuid.UUID) *domain.Promotion {
	return &domain.Promotion{
		SalonID:         salonID,
		Name:            r.Name,
		Description:     r.Description,
		Kind:            domain.PromotionKind(r.Kind),
		DiscountPercent: r.DiscountPercent,
		ServiceIDs:      r.ServiceIDs,
		Weekdays:        r.Weekdays,
		Active:          r.Active == nil || *r.Active,
	}
}

// UpdatePromotionRequest запрос на обновление акции
// Все поля опциональны - обновляются только переданные значения
type UpdatePromotionRequest struct {
	Name            *string     `json:"name,omitempty"`
	Description     *string     `json:"description,omitempty"`
	Kind            *string     `json:"kind,omitempty"`
	DiscountPercent *int        `json:"discountPercent,omitempty"`
	ServiceIDs      []uuid.UUID `json:"serviceIds,omitempty"`
	Weekdays        []int       `json:"weekdays,omitempty"`
	Active          *bool       `json:"active,omitempty"`
}

// ApplyTo применяет изменения к акции
// При смене типа селектор другого типа очищается
func (r *UpdatePromotionRequest) ApplyTo(p *domain.Promotion) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.Kind != nil {
		p.Kind = domain.PromotionKind(*r.Kind)
	}
	if r.DiscountPercent != nil {
		p.DiscountPercent = *r.DiscountPercent
	}
	if r.ServiceIDs != nil {
		p.ServiceIDs = r.ServiceIDs
	}
	if r.Weekdays != nil {
		p.Weekdays = r.Weekdays
	}
	if r.Active != nil {
		p.Active = *r.Active
	}

	switch p.Kind {
	case domain.PromotionKindService:
		p.Weekdays = nil
	case domain.PromotionKindWeekday:
		p.ServiceIDs = nil
	}
}

// Response модели

// PromotionResponse ответ с данными акции
type PromotionResponse struct {
	ID              uuid.UUID   `json:"id"`
	SalonID         uuid.UUID   `json:"salonId"`
	Name            string      `json:"name"`
	Description     *string     `json:"description,omitempty"`
	Kind            string      `json:"kind"`
	DiscountPercent int         `json:"discountPercent"`
	ServiceIDs      []uuid.UUID `json:"serviceIds"`
	Weekdays        []int       `json:"weekdays"`
	Active          bool        `json:"active"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// PromotionListResponse ответ со списком акций
type PromotionListResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
}

// Методы конвертации

// FromDomainPromotion конвертирует domain модель в DTO
func FromDomainPromotion(p *domain.Promotion) *PromotionResponse {
	if p == nil {
		return nil
	}

	resp := &PromotionResponse{
		ID:              p.ID,
		SalonID:         p.SalonID,
		Name:            p.Name,
		Description:     p.Description,
		Kind:            string(p.Kind),
		DiscountPercent: p.DiscountPercent,
		ServiceIDs:      p.ServiceIDs,
		Weekdays:        p.Weekdays,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if resp.ServiceIDs == nil {
		resp.ServiceIDs = []uuid.UUID{}
	}
	if resp.Weekdays == nil {
		resp.Weekdays = []int{}
	}

	return resp
}

// FromDomainPromotionList конвертирует список domain моделей в DTO
func FromDomainPromotionList(promotions []*domain.Promotion) *PromotionListResponse {
	resp := &PromotionListResponse{
		Promotions: make([]PromotionResponse, 0, len(promotions)),
	}

	for _, promotion := range promotions {
		if promotionResp := FromDomainPromotion(promotion); promotionResp != nil {
			resp.Promotions = append(resp.Promotions, *promotionResp)
		}
	}

	return resp
}
