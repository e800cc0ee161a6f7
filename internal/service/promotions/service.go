package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	promotionRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-SalonService/internal/service/promotions/models"
)

// Service сервис для работы с акциями салона
type Service struct {
	promotionRepo PromotionRepository
	serviceRepo   ServiceRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса акций
func NewService(promotionRepo PromotionRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		promotionRepo: promotionRepo,
		serviceRepo:   serviceRepo,
		logger:        logger,
	}
}

// List получает все акции салона, включая отключённые
func (s *Service) List(ctx context.Context, salonID uuid.UUID) (*models.PromotionListResponse, error) {
	s.logger.Info("List: fetching promotions for salon=%s", salonID)

	promotions, err := s.promotionRepo.ListBySalon(ctx, salonID, false)
	if err != nil {
		s.logger.Error("List: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d promotions for salon=%s", len(promotions), salonID)
	return models.FromDomainPromotionList(promotions), nil
}

// Create создает акцию
// Некорректная акция отклоняется с ErrInvalidPromotionConfiguration и ошибками по полям
func (s *Service) Create(ctx context.Context, salonID uuid.UUID, req *models.CreatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("Create: creating promotion name=%s, kind=%s for salon=%s", req.Name, req.Kind, salonID)

	promotion := req.ToDomain(salonID)
	promotion.Name = strings.TrimSpace(promotion.Name)

	// 1. Валидируем акцию и услуги селектора
	if err := s.validate(ctx, promotion); err != nil {
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.promotionRepo.Create(ctx, promotion)
	if err != nil {
		s.logger.Error("Create: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created promotion id=%s", created.ID)
	return models.FromDomainPromotion(created), nil
}

// Update обновляет акцию
// Уже созданные записи хранят снимок акции и не пересчитываются
func (s *Service) Update(ctx context.Context, salonID, id uuid.UUID, req *models.UpdatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("Update: updating promotion id=%s for salon=%s", id, salonID)

	// 1. Получаем текущую акцию
	promotion, err := s.promotionRepo.GetByID(ctx, salonID, id)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			s.logger.Warn("Update: promotion id=%s not found in salon=%s", id, salonID)
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("Update: repository error for promotion id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения и валидируем
	req.ApplyTo(promotion)
	promotion.Name = strings.TrimSpace(promotion.Name)
	if err := s.validate(ctx, promotion); err != nil {
		return nil, err
	}

	// 3. Сохраняем
	updated, err := s.promotionRepo.Update(ctx, promotion)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("Update: repository error for promotion id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated promotion id=%s", id)
	return models.FromDomainPromotion(updated), nil
}

// validate проверяет акцию и принадлежность услуг селектора салону
func (s *Service) validate(ctx context.Context, promotion *domain.Promotion) error {
	if err := promotion.Validate(); err != nil {
		s.logger.Warn("validate: invalid promotion for salon=%s: %v", promotion.SalonID, err)
		return err
	}

	if promotion.Kind != domain.PromotionKindService {
		return nil
	}

	errs := domain.ValidationErrors{}
	for _, serviceID := range promotion.ServiceIDs {
		_, err := s.serviceRepo.GetByID(ctx, promotion.SalonID, serviceID)
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			errs.Add("serviceIds", fmt.Sprintf("service %s does not belong to the salon", serviceID))
			continue
		}
		if err != nil {
			s.logger.Error("validate: failed to get service id=%s: %v", serviceID, err)
			return fmt.Errorf("%w: validate - repository error: %v", ErrInternal, err)
		}
	}

	if err := errs.Wrap(domain.ErrInvalidPromotionConfiguration); err != nil {
		s.logger.Warn("validate: invalid promotion for salon=%s: %v", promotion.SalonID, errs)
		return err
	}
	return nil
}
