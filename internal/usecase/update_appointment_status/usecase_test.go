package update_appointment_status

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
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, salonID, id)
	appointment, _ := args.Get(0).(*domain.Appointment)
	return appointment, args.Error(1)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) AppointmentStatusChanged(ctx context.Context, a *domain.Appointment, from domain.AppointmentStatus) error {
	return m.Called(ctx, a, from).Error(0)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type transition struct{ from, to, result string }

type recordingMetrics struct{ transitions []transition }

func (r *recordingMetrics) IncStatusTransition(from, to, result string) {
	r.transitions = append(r.transitions, transition{from, to, result})
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(repo *mockAppointmentRepo, publisher *mockPublisher, metrics *recordingMetrics, now time.Time) *UseCase {
	uc := NewUseCase(repo, publisher, fakeTxManager{}, metrics, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_AllowedTransitions(t *testing.T) {
	tests := []struct {
		from domain.AppointmentStatus
		to   domain.AppointmentStatus
	}{
		{domain.StatusPending, domain.StatusConfirmed},
		{domain.StatusPending, domain.StatusCancelled},
		{domain.StatusConfirmed, domain.StatusCompleted},
		{domain.StatusConfirmed, domain.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			salonID, id := uuid.New(), uuid.New()
			now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

			repo := &mockAppointmentRepo{}
			repo.On("GetByID", mock.Anything, salonID, id).Return(&domain.Appointment{ID: id, SalonID: salonID, Status: tt.from}, nil)
			repo.On("UpdateStatus", mock.Anything, id, tt.from, tt.to).Return(nil)
			publisher := &mockPublisher{}
			publisher.On("AppointmentStatusChanged", mock.Anything, mock.Anything, tt.from).Return(nil)
			metrics := &recordingMetrics{}

			resp, err := newUseCase(repo, publisher, metrics, now).Execute(context.Background(), &Request{
				SalonID: salonID, AppointmentID: id, Status: string(tt.to),
			})
			require.NoError(t, err)

			assert.Equal(t, string(tt.from), resp.PreviousStatus)
			assert.Equal(t, string(tt.to), resp.Status)
			assert.Equal(t, now, resp.UpdatedAt)
			assert.Equal(t, []transition{{string(tt.from), string(tt.to), transitionApplied}}, metrics.transitions)
			repo.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestExecute_RejectedTransitions(t *testing.T) {
	tests := []struct {
		from domain.AppointmentStatus
		to   domain.AppointmentStatus
	}{
		{domain.StatusCompleted, domain.StatusCancelled},
		{domain.StatusCancelled, domain.StatusPending},
		{domain.StatusCancelled, domain.StatusConfirmed},
		{domain.StatusPending, domain.StatusCompleted},
		{domain.StatusConfirmed, domain.StatusPending},
		{domain.StatusPending, domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			salonID, id := uuid.New(), uuid.New()
			current := &domain.Appointment{ID: id, SalonID: salonID, Status: tt.from}

			repo := &mockAppointmentRepo{}
			repo.On("GetByID", mock.Anything, salonID, id).Return(current, nil)
			publisher := &mockPublisher{}
			metrics := &recordingMetrics{}

			_, err := newUseCase(repo, publisher, metrics, time.Now()).Execute(context.Background(), &Request{
				SalonID: salonID, AppointmentID: id, Status: string(tt.to),
			})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
			assert.Equal(t, tt.from, current.Status)
			assert.Equal(t, transitionRejected, metrics.transitions[0].result)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "AppointmentStatusChanged", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_StatusChangedConcurrently(t *testing.T) {
	salonID, id := uuid.New(), uuid.New()

	repo := &mockAppointmentRepo{}
	repo.On("GetByID", mock.Anything, salonID, id).Return(&domain.Appointment{ID: id, SalonID: salonID, Status: domain.StatusPending}, nil)
	repo.On("UpdateStatus", mock.Anything, id, domain.StatusPending, domain.StatusConfirmed).Return(appointmentRepo.ErrStatusChanged)

	_, err := newUseCase(repo, &mockPublisher{}, &recordingMetrics{}, time.Now()).Execute(context.Background(), &Request{
		SalonID: salonID, AppointmentID: id, Status: "confirmed",
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_Errors(t *testing.T) {
	salonID, id := uuid.New(), uuid.New()

	t.Run("unknown status", func(t *testing.T) {
		_, err := newUseCase(&mockAppointmentRepo{}, &mockPublisher{}, &recordingMetrics{}, time.Now()).Execute(context.Background(), &Request{
			SalonID: salonID, AppointmentID: id, Status: "archived",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	})

	t.Run("appointment of another salon", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		repo.On("GetByID", mock.Anything, salonID, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := newUseCase(repo, &mockPublisher{}, &recordingMetrics{}, time.Now()).Execute(context.Background(), &Request{
			SalonID: salonID, AppointmentID: id, Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("publish failure is not an error", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		repo.On("GetByID", mock.Anything, salonID, id).Return(&domain.Appointment{ID: id, SalonID: salonID, Status: domain.StatusPending}, nil)
		repo.On("UpdateStatus", mock.Anything, id, domain.StatusPending, domain.StatusCancelled).Return(nil)
		publisher := &mockPublisher{}
		publisher.On("AppointmentStatusChanged", mock.Anything, mock.Anything, domain.StatusPending).Return(errors.New("nats: timeout"))

		resp, err := newUseCase(repo, publisher, &recordingMetrics{}, time.Now()).Execute(context.Background(), &Request{
			SalonID: salonID, AppointmentID: id, Status: "cancelled",
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})
}
