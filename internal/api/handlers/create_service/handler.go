package create_service

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidService     = "некорректные данные услуги"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathUUID(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salons/{id}/services - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), salonID, &req)
	if err != nil {
		if fields, ok := domain.FieldsOf(err); ok {
			h.logger.Warn("POST /salons/{id}/services - Invalid service: salon_id=%s, fields=%v", salonID, fields)
			handlers.RespondValidationError(w, msgInvalidService, fields)
			return
		}

		h.logger.Error("POST /salons/{id}/services - Failed to create service: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /salons/{id}/services - Service created successfully: salon_id=%s, service_id=%s",
		salonID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
