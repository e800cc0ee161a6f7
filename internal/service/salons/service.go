package salons

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/service/salons/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service сервис для работы с салонами и их расписанием
type Service struct {
	salonRepo SalonRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(salonRepo SalonRepository, logger Logger) *Service {
	return &Service{
		salonRepo: salonRepo,
		logger:    logger,
	}
}

// Register регистрирует салон
// Расписание можно не передавать - тогда действуют часы по умолчанию
func (s *Service) Register(ctx context.Context, req *models.RegisterSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("Register: registering salon name=%s, email=%s", req.Name, req.Email)

	// 1. Валидируем входные данные
	errs := domain.ValidationErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs.Add("name", "name is required")
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		errs.Add("ownerName", "owner name is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		errs.Add("email", "email is invalid")
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs.Add("phone", "phone is required")
	}
	if err := errs.Wrap(ErrInvalidInput); err != nil {
		s.logger.Warn("Register: validation failed: %v", errs)
		return nil, err
	}

	schedule := models.ToDomainSchedule(req.Schedule)
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("Register: invalid schedule: %v", err)
		return nil, err
	}

	// 2. Сохраняем салон
	salon := &domain.Salon{
		Name:        strings.TrimSpace(req.Name),
		OwnerName:   strings.TrimSpace(req.OwnerName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     req.Address,
		Description: req.Description,
		Schedule:    schedule,
	}

	created, err := s.salonRepo.Create(ctx, salon)
	if err != nil {
		if errors.Is(err, salonRepo.ErrDuplicateEmail) {
			s.logger.Warn("Register: email=%s already registered", salon.Email)
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered salon id=%s", created.ID)
	return models.FromDomainSalon(created), nil
}

// GetByID получает профиль салона
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.SalonResponse, error) {
	salon, err := s.getSalon(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSalon(salon), nil
}

// GetSchedule получает недельное расписание салона
func (s *Service) GetSchedule(ctx context.Context, id uuid.UUID) (*models.ScheduleResponse, error) {
	salon, err := s.getSalon(ctx, "GetSchedule", id)
	if err != nil {
		return nil, err
	}

	return &models.ScheduleResponse{
		SalonID:    salon.ID,
		Configured: salon.HasSchedule(),
		Schedule:   models.FromDomainSchedule(salon.Schedule),
	}, nil
}

// UpdateSchedule заменяет недельное расписание салона
// Пустое расписание возвращает салон к часам по умолчанию
func (s *Service) UpdateSchedule(ctx context.Context, id uuid.UUID, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: salon=%s, days=%d", id, len(req.Schedule))

	// 1. Валидируем расписание
	schedule := models.ToDomainSchedule(req.Schedule)
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for salon=%s: %v", id, err)
		return nil, err
	}

	// 2. Сохраняем
	if err := s.salonRepo.UpdateSchedule(ctx, id, schedule); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("UpdateSchedule: salon id=%s not found", id)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for salon=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for salon=%s", id)
	return &models.ScheduleResponse{
		SalonID:    id,
		Configured: !schedule.IsEmpty(),
		Schedule:   models.FromDomainSchedule(schedule),
	}, nil
}

func (s *Service) getSalon(ctx context.Context, op string, id uuid.UUID) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("%s: salon id=%s not found", op, id)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("%s: repository error for salon id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return salon, nil
}
