package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Shift интервал работы [Start, End)
type Shift struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// IsEmpty returns true if the shift has no bounds
func (s *Shift) IsEmpty() bool {
	return s == nil || (s.Start.IsZero() && s.End.IsZero())
}

// DaySchedule расписание одного дня недели
// Legacy - устаревшая одиночная смена, используется только если нет Morning/Afternoon
type DaySchedule struct {
	Weekday   int    `json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	Morning   *Shift `json:"morningShift,omitempty"`
	Afternoon *Shift `json:"afternoonShift,omitempty"`
	Legacy    *Shift `json:"legacyShift,omitempty"`
}

// HasSplitShifts returns true if morning or afternoon shift is configured
func (d *DaySchedule) HasSplitShifts() bool {
	return !d.Morning.IsEmpty() || !d.Afternoon.IsEmpty()
}

// WeeklySchedule расписание салона на неделю, не больше одной записи на день
// Хранится в JSONB колонке salons.schedule
type WeeklySchedule []DaySchedule

// IsEmpty returns true if no day is configured
func (w WeeklySchedule) IsEmpty() bool {
	return len(w) == 0
}

// ForWeekday возвращает расписание дня; при дубликатах побеждает первая запись
func (w WeeklySchedule) ForWeekday(weekday time.Weekday) (DaySchedule, bool) {
	for _, day := range w {
		if day.Weekday == int(weekday) {
			return day, true
		}
	}
	return DaySchedule{}, false
}

// Validate проверяет расписание при сохранении владельцем
func (w WeeklySchedule) Validate() error {
	errs := ValidationErrors{}
	seen := make(map[int]bool, len(w))

	for i, day := range w {
		prefix := fmt.Sprintf("schedule[%d]", i)

		if day.Weekday < MinWeekday || day.Weekday > MaxWeekday {
			errs.Add(prefix+".weekday", fmt.Sprintf("weekday must be between %d and %d", MinWeekday, MaxWeekday))
		} else if seen[day.Weekday] {
			errs.Add(prefix+".weekday", "duplicate weekday")
		}
		seen[day.Weekday] = true

		validateShift(errs, prefix+".morningShift", day.Morning)
		validateShift(errs, prefix+".afternoonShift", day.Afternoon)
		validateShift(errs, prefix+".legacyShift", day.Legacy)

		if day.Morning != nil && day.Afternoon != nil && !errs.Has(prefix+".morningShift") && !errs.Has(prefix+".afternoonShift") {
			if day.Afternoon.Start.IsBefore(day.Morning.End) {
				errs.Add(prefix+".afternoonShift", "afternoon shift must start after morning shift ends")
			}
		}
	}

	return errs.Wrap(ErrInvalidSchedule)
}

func validateShift(errs ValidationErrors, field string, shift *Shift) {
	if shift == nil {
		return
	}
	if err := shift.Start.Validate(); err != nil {
		errs.Add(field+".start", "time must be in HH:MM format")
		return
	}
	if err := shift.End.Validate(); err != nil {
		errs.Add(field+".end", "time must be in HH:MM format")
		return
	}
	if !shift.End.IsAfter(shift.Start) {
		errs.Add(field, "end must be after start")
	}
}

// Value реализует driver.Valuer (JSONB)
func (w WeeklySchedule) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan реализует sql.Scanner (JSONB)
func (w *WeeklySchedule) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*w = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("domain: unsupported schedule scan type %T", src)
	}
	return json.Unmarshal(data, w)
}
