package scheduling

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// DayStatus результат разрешения расписания на дату
type DayStatus string

const (
	// DayStatusOpen салон работает, смены заданы
	DayStatusOpen DayStatus = "open"
	// DayStatusClosed выходной или день отсутствует в расписании
	DayStatusClosed DayStatus = "closed"
	// DayStatusConfigurationIncomplete день открыт, но ни одной смены не задано
	DayStatusConfigurationIncomplete DayStatus = "configuration_incomplete"
	// DayStatusDefaultHours расписание не настроено, используются часы по умолчанию
	DayStatusDefaultHours DayStatus = "default_hours"
)

// DayPlan смены салона на конкретную дату
type DayPlan struct {
	Date    time.Time
	Weekday time.Weekday
	Status  DayStatus
	Shifts  []domain.Shift

	// Unconfigured - у салона нет расписания, применён запасной вариант пн-пт
	Unconfigured bool
}

// IsBookable returns true if the plan may produce slots
func (p DayPlan) IsBookable() bool {
	return p.Status == DayStatusOpen || p.Status == DayStatusDefaultHours
}

// Slots последовательность всех слотов дня по сменам плана
func (p DayPlan) Slots() iter.Seq[types.TimeString] {
	return shiftsSlots(p.Shifts)
}

// SlotList слоты дня срезом
func (p DayPlan) SlotList() []types.TimeString {
	slots := make([]types.TimeString, 0)
	for slot := range p.Slots() {
		slots = append(slots, slot)
	}
	return slots
}

// FallbackShift смена по умолчанию для салона без расписания
func FallbackShift() domain.Shift {
	return domain.Shift{Start: domain.FallbackShiftStart, End: domain.FallbackShiftEnd}
}

// ResolveDay определяет смены салона на дату по недельному расписанию
func ResolveDay(schedule domain.WeeklySchedule, date time.Time) DayPlan {
	weekday := date.Weekday()
	plan := DayPlan{
		Date:    time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Weekday: weekday,
		Status:  DayStatusClosed,
	}

	// Расписание не настроено: пн-пт с часами по умолчанию, выходные закрыты
	if schedule.IsEmpty() {
		plan.Unconfigured = true
		if weekday != time.Saturday && weekday != time.Sunday {
			plan.Status = DayStatusDefaultHours
			plan.Shifts = []domain.Shift{FallbackShift()}
		}
		return plan
	}

	day, ok := schedule.ForWeekday(weekday)
	if !ok || !day.IsOpen {
		return plan
	}

	// Утренняя и дневная смены важнее устаревшей единой смены
	shifts := make([]domain.Shift, 0, 2)
	switch {
	case day.HasSplitShifts():
		if !day.Morning.IsEmpty() {
			shifts = append(shifts, *day.Morning)
		}
		if !day.Afternoon.IsEmpty() {
			shifts = append(shifts, *day.Afternoon)
		}
	case !day.Legacy.IsEmpty():
		shifts = append(shifts, *day.Legacy)
	}

	if len(shifts) == 0 {
		plan.Status = DayStatusConfigurationIncomplete
		return plan
	}

	plan.Status = DayStatusOpen
	plan.Shifts = shifts
	return plan
}
