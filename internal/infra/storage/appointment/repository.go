package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// activeSlotIndex уникальный индекс (salon_id, appointment_date, slot_time) WHERE status <> 'cancelled'
	activeSlotIndex = "uq_appointments_active_slot"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"salon_id",
	"client_name",
	"client_email",
	"client_phone",
	"service_id",
	"service_name",
	"appointment_date",
	"slot_time",
	"status",
	"notes",
	"payment_method_name",
	"applied_promotion_id",
	"applied_promotion_name",
	"discount_percent",
	"original_price",
	"final_price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись
// Нарушение уникальности активного слота возвращается как ErrSlotTaken,
// ошибка драйвера остаётся в цепочке для txmanager.IsSerializationFailure
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildInsert(a).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("%w: Create - salon=%s date=%s time=%s",
				ErrSlotTaken, a.SalonID, a.Date.Format(domain.DateFormat), a.Time)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись салона по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id, "salon_id": salonID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// GetActiveBySalonAndDate получает неотменённые записи салона на дату без блокировки
func (r *Repository) GetActiveBySalonAndDate(ctx context.Context, salonID uuid.UUID, date time.Time) ([]*domain.Appointment, error) {
	return r.GetBySalonWithFilter(ctx, domain.AppointmentsFilter{
		SalonID: salonID,
		Date:    &date,
	})
}

// ListActiveForUpdate получает неотменённые записи салона на дату и блокирует их (FOR UPDATE)
// Используется при создании записи внутри сериализуемой транзакции
func (r *Repository) ListActiveForUpdate(ctx context.Context, salonID uuid.UUID, date time.Time) ([]*domain.Appointment, error) {
	return r.GetBySalonWithFilter(ctx, domain.AppointmentsFilter{
		SalonID:   salonID,
		Date:      &date,
		ForUpdate: true,
	})
}

// GetBySalonWithFilter получает записи салона с фильтрацией
// Без явного статуса и IncludeInactive отменённые записи исключаются
func (r *Repository) GetBySalonWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFilterQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus меняет статус, только если текущий статус равен from
// Если статус уже другой (или записи нет), возвращает ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotConflict(err) {
			return fmt.Errorf("%w: UpdateStatus - id=%s", ErrSlotTaken, id)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%s expected=%s", ErrStatusChanged, id, from)
	}

	return nil
}

// CountByStatus возвращает количество записей салона по статусам
func (r *Repository) CountByStatus(ctx context.Context, salonID uuid.UUID) (map[domain.AppointmentStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"salon_id": salonID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.AppointmentStatus]int, len(domain.AllStatuses))
	for rows.Next() {
		var status domain.AppointmentStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// SumCompletedIncome сумма final_price завершённых записей за период [from, to]
func (r *Repository) SumCompletedIncome(ctx context.Context, salonID uuid.UUID, from, to time.Time) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(final_price), 0)").
		From(tableName).
		Where(squirrel.Eq{"salon_id": salonID, "status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"appointment_date": from}).
		Where(squirrel.LtOrEq{"appointment_date": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumCompletedIncome - build select query: %v", ErrBuildQuery, err)
	}

	var income float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&income); err != nil {
		return 0, fmt.Errorf("%w: SumCompletedIncome - scan sum: %v", ErrScanRow, err)
	}

	return income, nil
}

func buildInsert(a *domain.Appointment) squirrel.InsertBuilder {
	return psqlbuilder.Insert(tableName).
		Columns(
			"salon_id",
			"client_name",
			"client_email",
			"client_phone",
			"service_id",
			"service_name",
			"appointment_date",
			"slot_time",
			"status",
			"notes",
			"payment_method_name",
			"applied_promotion_id",
			"applied_promotion_name",
			"discount_percent",
			"original_price",
			"final_price",
		).
		Values(
			a.SalonID,
			a.ClientName,
			a.ClientEmail,
			a.ClientPhone,
			a.ServiceID,
			a.ServiceName,
			a.Date,
			a.Time,
			a.Status,
			a.Notes,
			a.PaymentMethodName,
			a.AppliedPromotionID,
			a.AppliedPromotionName,
			a.DiscountPercent,
			a.OriginalPrice,
			a.FinalPrice,
		).
		Suffix("RETURNING id, created_at, updated_at")
}

func buildFilterQuery(filter domain.AppointmentsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": *filter.Date})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	// Для конкретной даты - по времени слота, иначе сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("slot_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "slot_time DESC")
	}

	if filter.ForUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder
}

// isSlotConflict проверяет нарушение уникальности активного слота
func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqUniqueViolation && (pqErr.Constraint == "" || pqErr.Constraint == activeSlotIndex)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.SalonID,
		&a.ClientName,
		&a.ClientEmail,
		&a.ClientPhone,
		&a.ServiceID,
		&a.ServiceName,
		&a.Date,
		&a.Time,
		&a.Status,
		&a.Notes,
		&a.PaymentMethodName,
		&a.AppliedPromotionID,
		&a.AppliedPromotionName,
		&a.DiscountPercent,
		&a.OriginalPrice,
		&a.FinalPrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
