package list_promotions

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const msgInvalidSalonID = "некорректный ID салона"

type Handler struct {
	service PromotionService
	logger  Logger
}

func NewHandler(service PromotionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/promotions
// Владелец видит и неактивные акции
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathUUID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/promotions - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.List(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /salons/{id}/promotions - Failed to get promotions: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/promotions - Promotions retrieved successfully: salon_id=%s, count=%d",
		salonID, len(result.Promotions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
