package get_promotion_candidates

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса кандидатов акций
// Нужно указать хотя бы услугу или дату
type Request struct {
	SalonID   uuid.UUID
	ServiceID *uuid.UUID
	Date      *time.Time
}

// Response модель ответа со списком акций для выбора клиентом
type Response struct {
	// OriginalPrice цена услуги, если услуга выбрана
	OriginalPrice *float64
	Candidates    []Candidate
}

// Candidate акция, подходящая к выбору клиента
type Candidate struct {
	ID              uuid.UUID
	Name            string
	Description     *string
	Kind            domain.PromotionKind
	DiscountPercent int
	FinalPrice      *float64 // Цена со скидкой, если услуга выбрана
}
