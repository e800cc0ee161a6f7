package create_promotion

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/promotions/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPromotion   = "некорректная настройка акции"
)

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

// Handle POST /api/v1/salons/{salonId}/promotions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathUUID(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salons/{id}/promotions - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.CreatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/promotions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), salonID, &req)
	if err != nil {
		if fields, ok := domain.FieldsOf(err); ok {
			h.logger.Warn("POST /salons/{id}/promotions - Invalid promotion: salon_id=%s, fields=%v", salonID, fields)
			handlers.RespondValidationError(w, msgInvalidPromotion, fields)
			return
		}

		h.logger.Error("POST /salons/{id}/promotions - Failed to create promotion: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /salons/{id}/promotions - Promotion created successfully: salon_id=%s, promotion_id=%s",
		salonID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
