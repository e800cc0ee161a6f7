package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис каталога услуг салона
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List получает услуги салона
// Клиентам показываются только активные услуги
func (s *Service) List(ctx context.Context, salonID uuid.UUID, activeOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services for salon=%s, activeOnly=%t", salonID, activeOnly)

	services, err := s.serviceRepo.ListBySalon(ctx, salonID, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services for salon=%s", len(services), salonID)
	return models.FromDomainServiceList(services), nil
}

// Create добавляет услугу в каталог салона
func (s *Service) Create(ctx context.Context, salonID uuid.UUID, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%s for salon=%s", req.Name, salonID)

	service := &domain.Service{
		SalonID:         salonID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          req.Active == nil || *req.Active,
	}

	// 1. Валидируем услугу
	if err := service.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// Update обновляет услугу салона
// Изменения не затрагивают уже созданные записи - в них хранится снимок услуги
func (s *Service) Update(ctx context.Context, salonID, id uuid.UUID, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s for salon=%s", id, salonID)

	// 1. Получаем текущую услугу
	service, err := s.serviceRepo.GetByID(ctx, salonID, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found in salon=%s", id, salonID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения и валидируем
	req.ApplyTo(service)
	service.Name = strings.TrimSpace(service.Name)
	if err := service.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	updated, err := s.serviceRepo.Update(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%s", id)
	return models.FromDomainService(updated), nil
}
