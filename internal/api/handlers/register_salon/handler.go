package register_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/salons"
	"github.com/m04kA/SMC-SalonService/internal/service/salons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные салона"
	msgDuplicateEmail     = "салон с таким email уже зарегистрирован"
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

// Handle POST /api/v1/salons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if fields, ok := domain.FieldsOf(err); ok {
			h.logger.Warn("POST /salons - Invalid data: fields=%v", fields)
			handlers.RespondValidationError(w, msgInvalidData, fields)
			return
		}

		switch {
		case errors.Is(err, salons.ErrDuplicateEmail):
			h.logger.Warn("POST /salons - Duplicate email: email=%s", req.Email)
			handlers.RespondConflict(w, msgDuplicateEmail)

		default:
			h.logger.Error("POST /salons - Failed to register salon: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons - Salon registered successfully: salon_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
