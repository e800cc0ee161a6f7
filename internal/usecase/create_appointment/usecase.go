package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	serviceRepo     ServiceRepository
	promotionRepo   PromotionRepository
	publisher       EventPublisher
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	promotionRepo PromotionRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		serviceRepo:     serviceRepo,
		promotionRepo:   promotionRepo,
		publisher:       publisher,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и вставка выполняются в сериализуемой транзакции,
// окончательно гонку разрешает частичный уникальный индекс по слоту
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: salon=%s, service=%s, date=%s, time=%s",
		req.SalonID, req.Form.ServiceID, req.Form.Date, req.Form.Time)

	now := uc.timeProvider.Now()

	// 1. Валидация формы
	form, errs := parseForm(req.Form, now)
	if !errs.Empty() {
		uc.logger.Warn("CreateAppointment: validation failed: %v", errs)
		return nil, errs.Wrap(ErrInvalidInput)
	}

	// 2. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateAppointment: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Получаем услугу, отключённую услугу забронировать нельзя
	service, err := uc.serviceRepo.GetByID(ctx, req.SalonID, form.serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", form.serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", form.serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%s is inactive", form.serviceID)
		return nil, ErrServiceNotFound
	}

	// 4. Смены на дату и допустимость слота
	plan := scheduling.ResolveDay(salon.Schedule, form.date)
	if plan.Status == scheduling.DayStatusConfigurationIncomplete {
		uc.logger.Warn("CreateAppointment: salon id=%s is open on %s without shifts",
			req.SalonID, form.date.Format(domain.DateFormat))
		return nil, ErrConfigurationIncomplete
	}
	if !plan.IsBookable() {
		uc.logger.Warn("CreateAppointment: salon id=%s is not bookable on %s, status=%s",
			req.SalonID, form.date.Format(domain.DateFormat), plan.Status)
		return nil, ErrSalonClosed
	}

	if !scheduling.ContainsSlot(plan.SlotList(), form.time) {
		uc.logger.Warn("CreateAppointment: time=%s is not a slot of %s", form.time, form.date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, form.time)
	}

	if isSameDay(form.date, now) && form.time.IsBefore(types.NewTimeString(now)) {
		uc.logger.Warn("CreateAppointment: time=%s has already passed today", form.time)
		return nil, ErrSlotInPast
	}

	// 5. Снимок услуги и цены
	appointment := &domain.Appointment{
		SalonID:           req.SalonID,
		ClientName:        form.clientName,
		ClientEmail:       form.clientEmail,
		ClientPhone:       form.clientPhone,
		ServiceID:         ptr.Ptr(service.ID),
		ServiceName:       service.Name,
		Date:              plan.Date,
		Time:              form.time,
		Status:            domain.StatusPending,
		Notes:             form.notes,
		PaymentMethodName: ptr.Ptr(form.paymentMethod),
		OriginalPrice:     service.Price,
		FinalPrice:        service.Price,
	}

	// 6. Акция, если клиент её выбрал
	if form.promotionID != nil {
		if err := uc.applyPromotion(ctx, appointment, *form.promotionID); err != nil {
			return nil, err
		}
	}

	var result *domain.Appointment

	// 7. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Неотменённые записи на дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.ListActiveForUpdate(txCtx, req.SalonID, plan.Date)
		if err != nil {
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 7.2. Слот уже занят
		if scheduling.IsSlotTaken(form.time, plan.Date, appointments) {
			uc.metrics.IncBookingConflict(conflictStagePrecheck)
			uc.logger.Warn("CreateAppointment: slot %s %s is already taken",
				plan.Date.Format(domain.DateFormat), form.time)
			return ErrSlotUnavailable
		}

		// 7.3. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.metrics.IncBookingConflict(conflictStageUniqueIndex)
				uc.logger.Warn("CreateAppointment: slot %s %s was taken concurrently",
					plan.Date.Format(domain.DateFormat), form.time)
				return ErrSlotUnavailable
			}
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.metrics.IncBookingConflict(conflictStageSerialization)
			uc.logger.Warn("CreateAppointment: serialization conflict for slot %s %s: %v",
				plan.Date.Format(domain.DateFormat), form.time, err)
			return nil, ErrSlotUnavailable
		}
		if errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncAppointmentCreated(result.HasPromotion())
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// 8. Событие для уведомлений, ошибка публикации не ломает запись
	if err := uc.publisher.AppointmentCreated(ctx, result); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%s: %v", result.ID, err)
	}

	return toResponse(result), nil
}

// applyPromotion применяет выбранную акцию, если она всё ещё подходит
// Отключённая или переставшая подходить акция молча заменяется полной ценой
func (uc *UseCase) applyPromotion(ctx context.Context, appointment *domain.Appointment, promotionID uuid.UUID) error {
	promotions, err := uc.promotionRepo.ListBySalon(ctx, appointment.SalonID, true)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list promotions: %v", err)
		return fmt.Errorf("%w: failed to list promotions: %v", ErrInternal, err)
	}

	candidates := scheduling.ResolvePromotions(promotions, appointment.ServiceID, &appointment.Date)
	promotion, ok := scheduling.FindCandidate(candidates, promotionID)
	if !ok {
		uc.metrics.IncPromotion(promotionFallback)
		uc.logger.Warn("CreateAppointment: promotion id=%s no longer applies, using full price", promotionID)
		return nil
	}

	appointment.AppliedPromotionID = ptr.Ptr(promotion.ID)
	appointment.AppliedPromotionName = ptr.Ptr(promotion.Name)
	appointment.DiscountPercent = ptr.Ptr(promotion.DiscountPercent)
	appointment.FinalPrice = scheduling.DiscountedPrice(appointment.OriginalPrice, promotion.DiscountPercent)

	uc.metrics.IncPromotion(promotionApplied)
	uc.logger.Info("CreateAppointment: applied promotion id=%s, %d%%", promotion.ID, promotion.DiscountPercent)

	return nil
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:                   a.ID,
		SalonID:              a.SalonID,
		ClientName:           a.ClientName,
		ClientEmail:          a.ClientEmail,
		ClientPhone:          a.ClientPhone,
		ServiceID:            a.ServiceID,
		ServiceName:          a.ServiceName,
		Date:                 a.Date,
		Time:                 a.Time,
		Status:               string(a.Status),
		Notes:                a.Notes,
		PaymentMethodName:    a.PaymentMethodName,
		AppliedPromotionID:   a.AppliedPromotionID,
		AppliedPromotionName: a.AppliedPromotionName,
		DiscountPercent:      a.DiscountPercent,
		OriginalPrice:        a.OriginalPrice,
		FinalPrice:           a.FinalPrice,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
