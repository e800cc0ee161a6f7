package update_promotion

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/promotions"
	"github.com/m04kA/SMC-SalonService/internal/service/promotions/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidPromotionID = "некорректный ID акции"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPromotion   = "некорректная настройка акции"
	msgPromotionNotFound  = "акция не найдена"
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

// Handle PUT /api/v1/salons/{salonId}/promotions/{promotionId}
// Через active=false акция деактивируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathUUID(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/promotions/{id} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	promotionID, err := handlers.PathUUID(r, "promotionId")
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/promotions/{id} - Invalid promotion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPromotionID)
		return
	}

	var req models.UpdatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/promotions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), salonID, promotionID, &req)
	if err != nil {
		if fields, ok := domain.FieldsOf(err); ok {
			h.logger.Warn("PUT /salons/{id}/promotions/{id} - Invalid promotion: promotion_id=%s, fields=%v",
				promotionID, fields)
			handlers.RespondValidationError(w, msgInvalidPromotion, fields)
			return
		}

		switch {
		case errors.Is(err, promotions.ErrPromotionNotFound):
			h.logger.Warn("PUT /salons/{id}/promotions/{id} - Promotion not found: salon_id=%s, promotion_id=%s",
				salonID, promotionID)
			handlers.RespondNotFound(w, msgPromotionNotFound)

		default:
			h.logger.Error("PUT /salons/{id}/promotions/{id} - Failed to update promotion: promotion_id=%s, error=%v",
				promotionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/promotions/{id} - Promotion updated successfully: promotion_id=%s", promotionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
