package domain

// Slot generation
const (
	SlotGranularityMinutes = 30

	// Часы работы по умолчанию для салона без настроенного расписания (пн-пт)
	FallbackShiftStart = "09:00"
	FallbackShiftEnd   = "18:00"
)

// Business validation constants
const (
	MinDiscountPercent = 1
	MaxDiscountPercent = 100

	MinPhoneDigits = 8
	MaxPhoneDigits = 15

	MaxNameLength  = 200
	MaxNotesLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Weekdays: 0 = воскресенье ... 6 = суббота (как time.Weekday)
const (
	MinWeekday = 0
	MaxWeekday = 6
)

// AllStatuses все статусы записей в порядке жизненного цикла
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
