package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PromotionKind тип селектора акции
type PromotionKind string

const (
	PromotionKindService PromotionKind = "service" // скидка на выбранные услуги
	PromotionKindWeekday PromotionKind = "weekday" // скидка по дням недели
)

// IsValid returns true if the kind is known
func (k PromotionKind) IsValid() bool {
	return k == PromotionKindService || k == PromotionKindWeekday
}

// Promotion акция салона
type Promotion struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	Description     *string
	Kind            PromotionKind
	DiscountPercent int
	Active          bool
	ServiceIDs      []uuid.UUID // для Kind == service
	Weekdays        []int       // для Kind == weekday, 0 = воскресенье
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AppliesToService returns true if the promotion is service-kind and lists the service
func (p *Promotion) AppliesToService(serviceID uuid.UUID) bool {
	if p.Kind != PromotionKindService {
		return false
	}
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// AppliesToWeekday returns true if the promotion is weekday-kind and lists the weekday
func (p *Promotion) AppliesToWeekday(weekday time.Weekday) bool {
	if p.Kind != PromotionKindWeekday {
		return false
	}
	for _, day := range p.Weekdays {
		if day == int(weekday) {
			return true
		}
	}
	return false
}

// Validate проверяет акцию при создании/изменении
// Возвращает ErrInvalidPromotionConfiguration с ошибками по полям
func (p *Promotion) Validate() error {
	errs := ValidationErrors{}

	if strings.TrimSpace(p.Name) == "" {
		errs.Add("name", "name is required")
	}
	if p.DiscountPercent < MinDiscountPercent || p.DiscountPercent > MaxDiscountPercent {
		errs.Add("discountPercent", fmt.Sprintf("discount must be between %d and %d", MinDiscountPercent, MaxDiscountPercent))
	}

	switch p.Kind {
	case PromotionKindService:
		if len(p.ServiceIDs) == 0 {
			errs.Add("serviceIds", "at least one service is required")
		}
	case PromotionKindWeekday:
		if len(p.Weekdays) == 0 {
			errs.Add("weekdays", "at least one weekday is required")
		}
		for _, day := range p.Weekdays {
			if day < MinWeekday || day > MaxWeekday {
				errs.Add("weekdays", fmt.Sprintf("weekday must be between %d and %d", MinWeekday, MaxWeekday))
				break
			}
		}
	default:
		errs.Add("kind", "kind must be service or weekday")
	}

	return errs.Wrap(ErrInvalidPromotionConfiguration)
}
