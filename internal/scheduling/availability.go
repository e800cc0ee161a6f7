package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// FilterAvailable убирает слоты, занятые неотменёнными записями на эту дату
// Порядок слотов сохраняется
func FilterAvailable(slots []types.TimeString, date time.Time, appointments []*domain.Appointment) []types.TimeString {
	taken := takenSlots(date, appointments)

	available := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !taken[slot] {
			available = append(available, slot)
		}
	}
	return available
}

// IsSlotTaken проверяет, занят ли слот неотменённой записью на эту дату
func IsSlotTaken(slot types.TimeString, date time.Time, appointments []*domain.Appointment) bool {
	return takenSlots(date, appointments)[slot]
}

// FilterAfter оставляет слоты, начинающиеся не раньше from
func FilterAfter(slots []types.TimeString, from types.TimeString) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(from) {
			result = append(result, slot)
		}
	}
	return result
}

// ContainsSlot проверяет, входит ли слот в набор
func ContainsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

func takenSlots(date time.Time, appointments []*domain.Appointment) map[types.TimeString]bool {
	taken := make(map[types.TimeString]bool, len(appointments))
	for _, a := range appointments {
		if a == nil || !a.IsActive() || !sameDay(a.Date, date) {
			continue
		}
		taken[a.Time] = true
	}
	return taken
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
