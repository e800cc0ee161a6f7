package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service услуга салона
type Service struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate проверяет услугу перед сохранением
func (s *Service) Validate() error {
	errs := ValidationErrors{}

	name := strings.TrimSpace(s.Name)
	if name == "" {
		errs.Add("name", "name is required")
	} else if len(name) > MaxNameLength {
		errs.Add("name", "name is too long")
	}
	if s.DurationMinutes <= 0 {
		errs.Add("durationMinutes", "duration must be positive")
	}
	if s.Price < 0 {
		errs.Add("price", "price must not be negative")
	}

	return errs.Wrap(ErrInvalidService)
}
