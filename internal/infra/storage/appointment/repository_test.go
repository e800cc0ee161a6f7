package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func TestBuildFilterQuery(t *testing.T) {
	salonID := uuid.New()
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	confirmed := domain.StatusConfirmed

	t.Run("date with lock", func(t *testing.T) {
		query, args, err := buildFilterQuery(domain.AppointmentsFilter{SalonID: salonID, Date: &date, ForUpdate: true}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "WHERE salon_id = $1 AND appointment_date = $2 AND status <> $3")
		assert.Contains(t, query, "ORDER BY slot_time ASC")
		assert.True(t, strings.HasSuffix(query, "FOR UPDATE"))
		// squirrel.Eq раскрывает driver.Valuer, uuid уходит строкой
		assert.Equal(t, []interface{}{salonID.String(), date, domain.StatusCancelled}, args)
	})

	t.Run("date without lock", func(t *testing.T) {
		query, _, err := buildFilterQuery(domain.AppointmentsFilter{SalonID: salonID, Date: &date}).ToSql()
		require.NoError(t, err)

		assert.NotContains(t, query, "FOR UPDATE")
	})

	t.Run("explicit status replaces cancelled filter", func(t *testing.T) {
		query, args, err := buildFilterQuery(domain.AppointmentsFilter{SalonID: salonID, Status: &confirmed}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "status = $2")
		assert.NotContains(t, query, "<>")
		assert.Contains(t, query, "ORDER BY appointment_date DESC, slot_time DESC")
		assert.NotContains(t, query, "FOR UPDATE")
		assert.Equal(t, []interface{}{salonID.String(), confirmed}, args)
	})

	t.Run("include inactive and period", func(t *testing.T) {
		end := date.AddDate(0, 0, 7)
		query, args, err := buildFilterQuery(domain.AppointmentsFilter{
			SalonID:         salonID,
			StartDate:       &date,
			EndDate:         &end,
			IncludeInactive: true,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "appointment_date >= $2 AND appointment_date <= $3")
		assert.NotContains(t, query, "status <>")
		assert.NotContains(t, query, "status =")
		assert.Len(t, args, 3)
	})
}

func TestBuildInsert(t *testing.T) {
	serviceID := uuid.New()
	a := &domain.Appointment{
		SalonID:       uuid.New(),
		ClientName:    "Ana",
		ServiceID:     &serviceID,
		ServiceName:   "Corte de cabello",
		Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:          types.TimeString("09:00"),
		Status:        domain.StatusPending,
		OriginalPrice: 5000,
		FinalPrice:    4000,
	}

	query, args, err := buildInsert(a).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO appointments"))
	assert.True(t, strings.HasSuffix(query, "RETURNING id, created_at, updated_at"))
	assert.Len(t, args, 16)
	assert.Equal(t, types.TimeString("09:00"), args[7])
	assert.Equal(t, domain.StatusPending, args[8])
}

func TestIsSlotConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"active slot index", &pq.Error{Code: "23505", Constraint: activeSlotIndex}, true},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: activeSlotIndex}), true},
		{"unknown constraint name", &pq.Error{Code: "23505"}, true},
		{"other unique index", &pq.Error{Code: "23505", Constraint: "appointments_pkey"}, false},
		{"foreign key", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSlotConflict(tt.err))
		})
	}
}

var errStopQuery = errors.New("stop after capturing query")

// recordingTx запоминает запросы и не ходит в БД
type recordingTx struct {
	queries []string
}

func (t *recordingTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	t.queries = append(t.queries, query)
	return nil, errStopQuery
}

func (t *recordingTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	t.queries = append(t.queries, query)
	return nil, errStopQuery
}

func (t *recordingTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	t.queries = append(t.queries, query)
	return nil
}

func (t *recordingTx) Commit() error   { return nil }
func (t *recordingTx) Rollback() error { return nil }

type recordingBeginner struct {
	tx   *recordingTx
	opts *sql.TxOptions
}

func (b *recordingBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.opts = opts
	return b.tx, nil
}

func TestRepository_LockingInsideTransactions(t *testing.T) {
	salonID := uuid.New()
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("dashboard date filter in read-only transaction does not lock", func(t *testing.T) {
		beginner := &recordingBeginner{tx: &recordingTx{}}
		repo := NewRepository(beginner.tx)

		err := txmanager.NewTransactionManager(beginner).DoReadOnly(context.Background(), func(ctx context.Context) error {
			_, err := repo.GetBySalonWithFilter(ctx, domain.AppointmentsFilter{SalonID: salonID, Date: &date})
			return err
		})

		assert.ErrorIs(t, err, errStopQuery)
		assert.True(t, beginner.opts.ReadOnly)
		require.Len(t, beginner.tx.queries, 1)
		assert.Contains(t, beginner.tx.queries[0], "appointment_date = $2")
		assert.NotContains(t, beginner.tx.queries[0], "FOR UPDATE")
	})

	t.Run("slot lookup without lock", func(t *testing.T) {
		beginner := &recordingBeginner{tx: &recordingTx{}}
		repo := NewRepository(beginner.tx)

		err := txmanager.NewTransactionManager(beginner).Do(context.Background(), func(ctx context.Context) error {
			_, err := repo.GetActiveBySalonAndDate(ctx, salonID, date)
			return err
		})

		assert.ErrorIs(t, err, errStopQuery)
		require.Len(t, beginner.tx.queries, 1)
		assert.NotContains(t, beginner.tx.queries[0], "FOR UPDATE")
	})

	t.Run("booking lookup locks rows", func(t *testing.T) {
		beginner := &recordingBeginner{tx: &recordingTx{}}
		repo := NewRepository(beginner.tx)

		err := txmanager.NewTransactionManager(beginner).DoSerializable(context.Background(), func(ctx context.Context) error {
			_, err := repo.ListActiveForUpdate(ctx, salonID, date)
			return err
		})

		assert.ErrorIs(t, err, errStopQuery)
		assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
		require.Len(t, beginner.tx.queries, 1)
		assert.True(t, strings.HasSuffix(beginner.tx.queries[0], "FOR UPDATE"))
	})
}
