package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID uuid.UUID // ID салона
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	SalonID   uuid.UUID
	Date      time.Time
	Weekday   time.Weekday
	DayStatus scheduling.DayStatus

	// Unconfigured - салон не настроил расписание, показаны часы по умолчанию
	Unconfigured bool

	Slots []types.TimeString // Свободные слоты в хронологическом порядке
}
