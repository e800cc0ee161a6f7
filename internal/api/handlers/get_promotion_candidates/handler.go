package get_promotion_candidates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getPromotionCandidates "github.com/m04kA/SMC-SalonService/internal/usecase/get_promotion_candidates"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNothingSelected  = "укажите услугу или дату"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetPromotionCandidatesUseCase
	logger  Logger
}

func NewHandler(useCase GetPromotionCandidatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/promotion-candidates?serviceId=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathUUID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/promotion-candidates - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	serviceID, err := handlers.QueryUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/promotion-candidates - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/promotion-candidates - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getPromotionCandidates.Request{
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getPromotionCandidates.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/promotion-candidates - Invalid input: salon_id=%s, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgNothingSelected)

		case errors.Is(err, getPromotionCandidates.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/promotion-candidates - Service not found: salon_id=%s, service_id=%v",
				salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /salons/{id}/promotion-candidates - Failed to get candidates: salon_id=%s, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/promotion-candidates - Candidates retrieved successfully: salon_id=%s, count=%d",
		salonID, len(result.Candidates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
