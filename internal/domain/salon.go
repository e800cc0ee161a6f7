package domain

import (
	"time"

	"github.com/google/uuid"
)

// Salon represents a tenant of the platform
type Salon struct {
	ID          uuid.UUID
	Name        string
	OwnerName   string
	Email       string
	Phone       string
	Address     *string
	Description *string
	Schedule    WeeklySchedule // nil = расписание не настроено
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasSchedule returns true if the owner configured at least one day
func (s *Salon) HasSchedule() bool {
	return !s.Schedule.IsEmpty()
}
