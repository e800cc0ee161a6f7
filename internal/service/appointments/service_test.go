package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetBySalonWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	appointments, _ := args.Get(0).([]*domain.Appointment)
	return appointments, args.Error(1)
}

func (m *mockAppointmentRepo) CountByStatus(ctx context.Context, salonID uuid.UUID) (map[domain.AppointmentStatus]int, error) {
	args := m.Called(ctx, salonID)
	counts, _ := args.Get(0).(map[domain.AppointmentStatus]int)
	return counts, args.Error(1)
}

func (m *mockAppointmentRepo) SumCompletedIncome(ctx context.Context, salonID uuid.UUID, from, to time.Time) (float64, error) {
	args := m.Called(ctx, salonID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *mockAppointmentRepo, now time.Time) *Service {
	s := NewService(repo, fakeTxManager{}, time.UTC, nopLogger{})
	s.timeProvider = fixedTime{now: now}
	return s
}

func TestList_WithStats(t *testing.T) {
	salonID := uuid.New()
	now := time.Date(2025, 6, 18, 16, 30, 0, 0, time.UTC)
	today := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	status := domain.StatusConfirmed

	repo := &mockAppointmentRepo{}
	repo.On("GetBySalonWithFilter", mock.Anything, domain.AppointmentsFilter{SalonID: salonID, Date: &today, Status: &status}).
		Return([]*domain.Appointment{
			{ID: uuid.New(), SalonID: salonID, Date: today, Time: "10:00", Status: domain.StatusConfirmed, FinalPrice: 4000},
		}, nil)
	repo.On("CountByStatus", mock.Anything, salonID).Return(map[domain.AppointmentStatus]int{
		domain.StatusPending:   2,
		domain.StatusConfirmed: 1,
		domain.StatusCompleted: 5,
	}, nil)
	repo.On("SumCompletedIncome", mock.Anything, salonID, today, today).Return(9000.0, nil)
	repo.On("SumCompletedIncome", mock.Anything, salonID,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)).Return(42000.0, nil)

	resp, err := newService(repo, now).List(context.Background(), &models.ListAppointmentsRequest{
		SalonID: salonID,
		Status:  ptr.Ptr("confirmed"),
		Date:    &today,
	})
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "2025-06-18", resp.Appointments[0].Date)
	assert.Equal(t, "10:00", resp.Appointments[0].Time)

	assert.Equal(t, 8, resp.Stats.Total)
	assert.Equal(t, map[string]int{"pending": 2, "confirmed": 1, "completed": 5, "cancelled": 0}, resp.Stats.ByStatus)
	assert.Equal(t, 9000.0, resp.Stats.IncomeToday)
	assert.Equal(t, 42000.0, resp.Stats.IncomeMonth)
}

func TestList_InvalidFilter(t *testing.T) {
	salonID := uuid.New()
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	tests := []struct {
		name string
		req  models.ListAppointmentsRequest
	}{
		{name: "unknown status", req: models.ListAppointmentsRequest{SalonID: salonID, Status: ptr.Ptr("archived")}},
		{name: "period ends before start", req: models.ListAppointmentsRequest{SalonID: salonID, StartDate: &start, EndDate: &end}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAppointmentRepo{}

			_, err := newService(repo, start).List(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "GetBySalonWithFilter", mock.Anything, mock.Anything)
		})
	}
}

func TestList_RepositoryError(t *testing.T) {
	salonID := uuid.New()
	repo := &mockAppointmentRepo{}
	repo.On("GetBySalonWithFilter", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := newService(repo, time.Now()).List(context.Background(), &models.ListAppointmentsRequest{SalonID: salonID})

	assert.ErrorIs(t, err, ErrInternal)
}
