package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/salons"
	"github.com/m04kA/SMC-SalonService/internal/service/salons/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
	msgSalonNotFound      = "салон не найден"
)

type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/schedule
// Пустой список дней возвращает салон к часам по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathUUID(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/schedule - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), salonID, &req)
	if err != nil {
		if fields, ok := domain.FieldsOf(err); ok {
			h.logger.Warn("PUT /salons/{id}/schedule - Invalid schedule: salon_id=%s, fields=%v", salonID, fields)
			handlers.RespondValidationError(w, msgInvalidSchedule, fields)
			return
		}

		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id}/schedule - Salon not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("PUT /salons/{id}/schedule - Failed to update schedule: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/schedule - Schedule updated successfully: salon_id=%s, days=%d",
		salonID, len(result.Schedule))
	handlers.RespondJSON(w, http.StatusOK, result)
}
