package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модели

// RegisterSalonRequest запрос на регистрацию салона
type RegisterSalonRequest struct {
	Name        string           `json:"name"`
	OwnerName   string           `json:"ownerName"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Address     *string          `json:"address,omitempty"`
	Description *string          `json:"description,omitempty"`
	Schedule    []DayScheduleDTO `json:"schedule,omitempty"` // пусто = часы по умолчанию
}

// UpdateScheduleRequest запрос на замену недельного расписания
type UpdateScheduleRequest struct {
	Schedule []DayScheduleDTO `json:"schedule"`
}

// ShiftDTO смена в формате HH:MM
// Время не валидируется при декодировании, ошибки возвращаются по полям
type ShiftDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayScheduleDTO расписание дня недели (0 = воскресенье)
type DayScheduleDTO struct {
	Weekday        int       `json:"weekday"`
	IsOpen         bool      `json:"isOpen"`
	MorningShift   *ShiftDTO `json:"morningShift,omitempty"`
	AfternoonShift *ShiftDTO `json:"afternoonShift,omitempty"`
	LegacyShift    *ShiftDTO `json:"legacyShift,omitempty"`
}

// Response модели

// SalonResponse ответ с профилем салона
type SalonResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	OwnerName   string           `json:"ownerName"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Address     *string          `json:"address,omitempty"`
	Description *string          `json:"description,omitempty"`
	Schedule    []DayScheduleDTO `json:"schedule"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ScheduleResponse ответ с расписанием салона
type ScheduleResponse struct {
	SalonID    uuid.UUID        `json:"salonId"`
	Configured bool             `json:"configured"` // false = действуют часы по умолчанию
	Schedule   []DayScheduleDTO `json:"schedule"`
}

// Методы конвертации

// ToDomainSchedule конвертирует DTO в domain модель без валидации
func ToDomainSchedule(days []DayScheduleDTO) domain.WeeklySchedule {
	if len(days) == 0 {
		return nil
	}

	schedule := make(domain.WeeklySchedule, 0, len(days))
	for _, day := range days {
		schedule = append(schedule, domain.DaySchedule{
			Weekday:   day.Weekday,
			IsOpen:    day.IsOpen,
			Morning:   toDomainShift(day.MorningShift),
			Afternoon: toDomainShift(day.AfternoonShift),
			Legacy:    toDomainShift(day.LegacyShift),
		})
	}
	return schedule
}

// FromDomainSchedule конвертирует расписание в DTO
func FromDomainSchedule(schedule domain.WeeklySchedule) []DayScheduleDTO {
	days := make([]DayScheduleDTO, 0, len(schedule))
	for _, day := range schedule {
		days = append(days, DayScheduleDTO{
			Weekday:        day.Weekday,
			IsOpen:         day.IsOpen,
			MorningShift:   fromDomainShift(day.Morning),
			AfternoonShift: fromDomainShift(day.Afternoon),
			LegacyShift:    fromDomainShift(day.Legacy),
		})
	}
	return days
}

// FromDomainSalon конвертирует domain модель в DTO
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	if s == nil {
		return nil
	}

	return &SalonResponse{
		ID:          s.ID,
		Name:        s.Name,
		OwnerName:   s.OwnerName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		Description: s.Description,
		Schedule:    FromDomainSchedule(s.Schedule),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toDomainShift(s *ShiftDTO) *domain.Shift {
	if s == nil {
		return nil
	}
	return &domain.Shift{Start: types.TimeString(s.Start), End: types.TimeString(s.End)}
}

func fromDomainShift(s *domain.Shift) *ShiftDTO {
	if s.IsEmpty() {
		return nil
	}
	return &ShiftDTO{Start: s.Start.String(), End: s.End.String()}
}
