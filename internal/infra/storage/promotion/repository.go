package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const tableName = "promotions"

var columns = []string{
	"id",
	"salon_id",
	"name",
	"description",
	"kind",
	"discount_percent",
	"active",
	"service_ids",
	"weekdays",
	"created_at",
	"updated_at",
}

// Repository репозиторий акций салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория акций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает акцию
func (r *Repository) Create(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("salon_id", "name", "description", "kind", "discount_percent", "active", "service_ids", "weekdays").
		Values(
			promotion.SalonID,
			promotion.Name,
			promotion.Description,
			promotion.Kind,
			promotion.DiscountPercent,
			promotion.Active,
			toStringArray(promotion.ServiceIDs),
			toInt64Array(promotion.Weekdays),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&promotion.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	promotion.CreatedAt = createdAt.Time
	promotion.UpdatedAt = updatedAt.Time

	return promotion, nil
}

// Update обновляет акцию салона
func (r *Repository) Update(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("name", promotion.Name).
		Set("description", promotion.Description).
		Set("kind", promotion.Kind).
		Set("discount_percent", promotion.DiscountPercent).
		Set("active", promotion.Active).
		Set("service_ids", toStringArray(promotion.ServiceIDs)).
		Set("weekdays", toInt64Array(promotion.Weekdays)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": promotion.ID, "salon_id": promotion.SalonID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	promotion.CreatedAt = createdAt.Time
	promotion.UpdatedAt = updatedAt.Time

	return promotion, nil
}

// GetByID получает акцию салона по ID
func (r *Repository) GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id, "salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	promotion, err := scanPromotion(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan promotion: %v", ErrScanRow, err)
	}

	return promotion, nil
}

// ListBySalon получает акции салона, activeOnly - только активные
func (r *Repository) ListBySalon(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("created_at ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	promotions := make([]*domain.Promotion, 0)
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %v", ErrScanRow, err)
		}
		promotions = append(promotions, promotion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %v", ErrScanRow, err)
	}

	return promotions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var promotion domain.Promotion
	var serviceIDs pq.StringArray
	var weekdays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&promotion.ID,
		&promotion.SalonID,
		&promotion.Name,
		&promotion.Description,
		&promotion.Kind,
		&promotion.DiscountPercent,
		&promotion.Active,
		&serviceIDs,
		&weekdays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	promotion.ServiceIDs, err = fromStringArray(serviceIDs)
	if err != nil {
		return nil, err
	}
	promotion.Weekdays = fromInt64Array(weekdays)
	promotion.CreatedAt = createdAt.Time
	promotion.UpdatedAt = updatedAt.Time

	return &promotion, nil
}

func toStringArray(ids []uuid.UUID) pq.StringArray {
	arr := make(pq.StringArray, len(ids))
	for i, id := range ids {
		arr[i] = id.String()
	}
	return arr
}

func fromStringArray(arr pq.StringArray) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(arr))
	for _, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid service id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toInt64Array(days []int) pq.Int64Array {
	arr := make(pq.Int64Array, len(days))
	for i, d := range days {
		arr[i] = int64(d)
	}
	return arr
}

func fromInt64Array(arr pq.Int64Array) []int {
	days := make([]int, len(arr))
	for i, d := range arr {
		days[i] = int(d)
	}
	return days
}
