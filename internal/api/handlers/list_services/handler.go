package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const msgInvalidSalonID = "некорректный ID салона"

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

// Handle GET /api/v1/salons/{salonId}/services
// Клиентам показываются только активные услуги
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathUUID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.List(r.Context(), salonID, true)
	if err != nil {
		h.logger.Error("GET /salons/{id}/services - Failed to get services: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/services - Services retrieved successfully: salon_id=%s, count=%d",
		salonID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
