package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Form данные формы записи в том виде, в котором их прислал клиент
type Form struct {
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ServiceID     string
	Date          string // YYYY-MM-DD
	Time          string // HH:MM
	Notes         string
	PaymentMethod string
	PromotionID   string // опционально
}

// Request модель запроса на создание записи
type Request struct {
	SalonID uuid.UUID
	Form    Form
}

// Response модель ответа с созданной записью
type Response struct {
	ID          uuid.UUID
	SalonID     uuid.UUID
	ClientName  string
	ClientEmail string
	ClientPhone string

	ServiceID   *uuid.UUID
	ServiceName string

	Date   time.Time
	Time   types.TimeString
	Status string

	Notes             *string
	PaymentMethodName *string

	AppliedPromotionID   *uuid.UUID
	AppliedPromotionName *string
	DiscountPercent      *int
	OriginalPrice        float64
	FinalPrice           float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// parsedForm форма после успешной валидации
type parsedForm struct {
	clientName    string
	clientEmail   string
	clientPhone   string
	serviceID     uuid.UUID
	date          time.Time
	time          types.TimeString
	promotionID   *uuid.UUID
	notes         *string
	paymentMethod string
}
