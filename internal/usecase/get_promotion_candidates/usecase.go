package get_promotion_candidates

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// UseCase use case для получения акций, из которых клиент выбирает одну или ни одной
type UseCase struct {
	serviceRepo   ServiceRepository
	promotionRepo PromotionRepository
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(serviceRepo ServiceRepository, promotionRepo PromotionRepository, logger Logger) *UseCase {
	return &UseCase{
		serviceRepo:   serviceRepo,
		promotionRepo: promotionRepo,
		logger:        logger,
	}
}

// Execute возвращает все подходящие акции без автоматического выбора лучшей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetPromotionCandidates: salon=%s, service=%v, date=%v", req.SalonID, req.ServiceID, req.Date)

	if req.SalonID == uuid.Nil {
		return nil, fmt.Errorf("%w: salonID is required", ErrInvalidInput)
	}
	if req.ServiceID == nil && req.Date == nil {
		return nil, fmt.Errorf("%w: serviceId or date is required", ErrInvalidInput)
	}

	response := &Response{Candidates: []Candidate{}}

	// 1. Цена берётся из текущей услуги
	if req.ServiceID != nil {
		service, err := uc.serviceRepo.GetByID(ctx, req.SalonID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetPromotionCandidates: service id=%s not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetPromotionCandidates: failed to get service id=%s: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !service.Active {
			uc.logger.Warn("GetPromotionCandidates: service id=%s is inactive", service.ID)
			return nil, ErrServiceNotFound
		}
		response.OriginalPrice = ptr.Ptr(service.Price)
	}

	// 2. Активные акции салона
	promotions, err := uc.promotionRepo.ListBySalon(ctx, req.SalonID, true)
	if err != nil {
		uc.logger.Error("GetPromotionCandidates: failed to list promotions: %v", err)
		return nil, fmt.Errorf("%w: failed to list promotions: %v", ErrInternal, err)
	}

	// 3. Объединение акций по услуге и дню недели
	for _, p := range scheduling.ResolvePromotions(promotions, req.ServiceID, req.Date) {
		candidate := Candidate{
			ID:              p.ID,
			Name:            p.Name,
			Description:     p.Description,
			Kind:            p.Kind,
			DiscountPercent: p.DiscountPercent,
		}
		if response.OriginalPrice != nil {
			candidate.FinalPrice = ptr.Ptr(scheduling.DiscountedPrice(*response.OriginalPrice, p.DiscountPercent))
		}
		response.Candidates = append(response.Candidates, candidate)
	}

	uc.logger.Info("GetPromotionCandidates: salon=%s, %d candidates", req.SalonID, len(response.Candidates))
	return response, nil
}
