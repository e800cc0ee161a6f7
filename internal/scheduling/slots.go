package scheduling

import (
	"iter"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// GenerateSlots возвращает ленивую последовательность начал слотов смены
// Шаг domain.SlotGranularityMinutes, первый слот ровно в shift.Start,
// слот попадает в смену, только если целиком заканчивается не позже shift.End
// Некорректная смена (end <= start, неверный формат) даёт пустую последовательность
func GenerateSlots(shift domain.Shift) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		start, err := shift.Start.Minutes()
		if err != nil {
			return
		}
		end, err := shift.End.Minutes()
		if err != nil {
			return
		}

		for m := start; m+domain.SlotGranularityMinutes <= end; m += domain.SlotGranularityMinutes {
			slot, err := types.FromMinutes(m)
			if err != nil {
				return
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// CollectSlots склеивает слоты смен в порядке передачи, без дедупликации
func CollectSlots(shifts ...domain.Shift) []types.TimeString {
	slots := make([]types.TimeString, 0)
	for slot := range shiftsSlots(shifts) {
		slots = append(slots, slot)
	}
	return slots
}

// shiftsSlots последовательность слотов всех смен подряд
func shiftsSlots(shifts []domain.Shift) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		for _, shift := range shifts {
			for slot := range GenerateSlots(shift) {
				if !yield(slot) {
					return
				}
			}
		}
	}
}
