package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case для получения свободных слотов салона на дату
type UseCase struct {
	salonRepo       SalonRepository
	appointmentRepo AppointmentRepository
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:       salonRepo,
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Закрытый или ненастроенный день возвращается как данные, а не как ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%s, date=%s", req.SalonID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date=%s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, req.Date.Format(domain.DateFormat))
	}

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Смены на дату
	plan := scheduling.ResolveDay(salon.Schedule, req.Date)
	uc.metrics.IncSlotLookup(string(plan.Status))

	response := &Response{
		SalonID:      req.SalonID,
		Date:         plan.Date,
		Weekday:      plan.Weekday,
		DayStatus:    plan.Status,
		Unconfigured: plan.Unconfigured,
		Slots:        []types.TimeString{},
	}

	if plan.Unconfigured {
		uc.logger.Warn("GetAvailableSlots: salon id=%s has no schedule, using default hours", req.SalonID)
	}
	if plan.Status == scheduling.DayStatusConfigurationIncomplete {
		uc.logger.Warn("GetAvailableSlots: salon id=%s is open on weekday=%d without shifts", req.SalonID, plan.Weekday)
	}

	if !plan.IsBookable() {
		return response, nil
	}

	// 5. Исключаем занятые слоты
	appointments, err := uc.appointmentRepo.GetActiveBySalonAndDate(ctx, req.SalonID, plan.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	slots := scheduling.FilterAvailable(plan.SlotList(), plan.Date, appointments)

	// 6. Сегодня скрываем уже прошедшие слоты
	if isSameDay(req.Date, now) {
		slots = scheduling.FilterAfter(slots, types.NewTimeString(now))
	}

	response.Slots = slots

	uc.logger.Info("GetAvailableSlots: salon=%s, date=%s, status=%s, %d slots available",
		req.SalonID, req.Date.Format(domain.DateFormat), plan.Status, len(slots))

	return response, nil
}
