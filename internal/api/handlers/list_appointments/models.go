package list_appointments

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// status, date, startDate, endDate, includeInactive - опциональные
func ToServiceRequest(salonID uuid.UUID, r *http.Request) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		SalonID: salonID,
		Status:  handlers.QueryString(r, "status"),
	}

	var err error
	if req.Date, err = handlers.QueryDate(r, "date"); err != nil {
		return nil, err
	}
	if req.StartDate, err = handlers.QueryDate(r, "startDate"); err != nil {
		return nil, err
	}
	if req.EndDate, err = handlers.QueryDate(r, "endDate"); err != nil {
		return nil, err
	}
	if req.IncludeInactive, err = handlers.QueryBool(r, "includeInactive"); err != nil {
		return nil, err
	}

	return req, nil
}
