package scheduling

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ResolvePromotions возвращает активные акции, подходящие к услуге и/или дате
// Сначала акции по услуге, затем по дню недели; каждая акция не больше одного раза
// Выбор акции остаётся за клиентом
func ResolvePromotions(promotions []*domain.Promotion, serviceID *uuid.UUID, date *time.Time) []*domain.Promotion {
	candidates := make([]*domain.Promotion, 0)
	seen := make(map[uuid.UUID]bool)

	add := func(p *domain.Promotion) {
		if seen[p.ID] {
			return
		}
		seen[p.ID] = true
		candidates = append(candidates, p)
	}

	if serviceID != nil {
		for _, p := range promotions {
			if p != nil && p.Active && p.AppliesToService(*serviceID) {
				add(p)
			}
		}
	}

	if date != nil {
		weekday := date.Weekday()
		for _, p := range promotions {
			if p != nil && p.Active && p.AppliesToWeekday(weekday) {
				add(p)
			}
		}
	}

	return candidates
}

// DiscountedPrice цена со скидкой: round(price * (1 - percent/100))
// Множитель (100 - percent) целый, поэтому половинки (x.5) не теряются на 1 - percent/100
func DiscountedPrice(price float64, discountPercent int) float64 {
	return math.Round(price * float64(100-discountPercent) / 100)
}

// FindCandidate ищет выбранную клиентом акцию среди подходящих
func FindCandidate(candidates []*domain.Promotion, id uuid.UUID) (*domain.Promotion, bool) {
	for _, p := range candidates {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}
