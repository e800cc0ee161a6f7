package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	SalonID      uuid.UUID `json:"salonId"`
	Date         string    `json:"date"`
	Weekday      int       `json:"weekday"` // 0 = воскресенье
	DayStatus    string    `json:"dayStatus"`
	Unconfigured bool      `json:"unconfigured"`
	Slots        []string  `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.String())
	}

	return &AvailableSlotsResponse{
		SalonID:      resp.SalonID,
		Date:         resp.Date.Format(domain.DateFormat),
		Weekday:      int(resp.Weekday),
		DayStatus:    string(resp.DayStatus),
		Unconfigured: resp.Unconfigured,
		Slots:        slots,
	}
}
