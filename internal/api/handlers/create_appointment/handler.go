package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidForm        = "форма записи заполнена некорректно"
	msgSlotUnavailable    = "выбранное время уже занято, выберите другой слот"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSalonClosed        = "салон не работает в выбранную дату"
	msgScheduleIncomplete = "расписание салона на выбранную дату не настроено"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotInPast         = "выбранное время уже прошло"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathUUID(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salons/{id}/appointments - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(salonID))
	if err != nil {
		// Ошибки формы отдаются по полям, форма на клиенте не сбрасывается
		if fields, ok := domain.FieldsOf(err); ok {
			h.logger.Warn("POST /salons/{id}/appointments - Invalid form: salon_id=%s, fields=%v", salonID, fields)
			handlers.RespondValidationError(w, msgInvalidForm, fields)
			return
		}

		switch {
		case errors.Is(err, createAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /salons/{id}/appointments - Slot unavailable: salon_id=%s, date=%s, time=%s",
				salonID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/appointments - Salon not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /salons/{id}/appointments - Service not found: salon_id=%s, service_id=%s",
				salonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrSalonClosed):
			h.logger.Warn("POST /salons/{id}/appointments - Salon closed: salon_id=%s, date=%s", salonID, req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createAppointment.ErrConfigurationIncomplete):
			h.logger.Warn("POST /salons/{id}/appointments - Schedule incomplete: salon_id=%s, date=%s", salonID, req.Date)
			handlers.RespondConflict(w, msgScheduleIncomplete)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /salons/{id}/appointments - Invalid time slot: salon_id=%s, time=%s", salonID, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrSlotInPast):
			h.logger.Warn("POST /salons/{id}/appointments - Slot in past: salon_id=%s, date=%s, time=%s",
				salonID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgSlotInPast)

		default:
			h.logger.Error("POST /salons/{id}/appointments - Failed to create appointment: salon_id=%s, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/appointments - Appointment created successfully: appointment_id=%s, salon_id=%s",
		result.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
