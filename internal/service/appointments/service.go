package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис панели владельца: список записей и сводка
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// List получает записи салона с фильтрацией и сводку по статусам и доходу
// Доход считается по завершённым записям за сегодня и за текущий месяц
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching appointments for salon=%s", req.SalonID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	// 1. Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var (
		appointments []*domain.Appointment
		counts       map[domain.AppointmentStatus]int
		incomeToday  float64
		incomeMonth  float64
	)

	// 2. Список и сводка читаются из одного снимка
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		if appointments, err = s.appointmentRepo.GetBySalonWithFilter(txCtx, filter); err != nil {
			return fmt.Errorf("get appointments: %w", err)
		}
		if counts, err = s.appointmentRepo.CountByStatus(txCtx, req.SalonID); err != nil {
			return fmt.Errorf("count by status: %w", err)
		}
		if incomeToday, err = s.appointmentRepo.SumCompletedIncome(txCtx, req.SalonID, today, today); err != nil {
			return fmt.Errorf("income today: %w", err)
		}
		if incomeMonth, err = s.appointmentRepo.SumCompletedIncome(txCtx, req.SalonID, monthStart, monthEnd); err != nil {
			return fmt.Errorf("income month: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("List: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	byStatus, total := models.FromDomainCounts(counts)

	s.logger.Info("List: successfully fetched %d appointments for salon=%s", len(appointments), req.SalonID)
	return &models.AppointmentListResponse{
		Appointments: models.FromDomainAppointmentList(appointments),
		Stats: models.StatsResponse{
			Total:       total,
			ByStatus:    byStatus,
			IncomeToday: incomeToday,
			IncomeMonth: incomeMonth,
		},
	}, nil
}
