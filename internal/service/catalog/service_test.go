package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(*domain.Service)
	return created, args.Error(1)
}

func (m *mockServiceRepo) Update(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, s)
	updated, _ := args.Get(0).(*domain.Service)
	return updated, args.Error(1)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Service, error) {
	args := m.Called(ctx, salonID, id)
	service, _ := args.Get(0).(*domain.Service)
	return service, args.Error(1)
}

func (m *mockServiceRepo) ListBySalon(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]*domain.Service, error) {
	args := m.Called(ctx, salonID, activeOnly)
	services, _ := args.Get(0).([]*domain.Service)
	return services, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCreate(t *testing.T) {
	salonID := uuid.New()

	t.Run("active by default", func(t *testing.T) {
		repo := &mockServiceRepo{}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Service) bool {
			return s.Active && s.SalonID == salonID && s.Name == "Manicura"
		})).Return(&domain.Service{ID: uuid.New(), SalonID: salonID, Name: "Manicura", DurationMinutes: 45, Price: 3000, Active: true}, nil)

		resp, err := NewService(repo, nopLogger{}).Create(context.Background(), salonID, &models.CreateServiceRequest{
			Name: " Manicura ", DurationMinutes: 45, Price: 3000,
		})
		require.NoError(t, err)

		assert.True(t, resp.Active)
		repo.AssertExpectations(t)
	})

	t.Run("invalid service", func(t *testing.T) {
		repo := &mockServiceRepo{}

		_, err := NewService(repo, nopLogger{}).Create(context.Background(), salonID, &models.CreateServiceRequest{
			Name: "", DurationMinutes: 0, Price: -1,
		})

		require.ErrorIs(t, err, domain.ErrInvalidService)
		fields, ok := domain.FieldsOf(err)
		require.True(t, ok)
		assert.Len(t, fields, 3)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	salonID, id := uuid.New(), uuid.New()

	t.Run("deactivate keeps other fields", func(t *testing.T) {
		repo := &mockServiceRepo{}
		repo.On("GetByID", mock.Anything, salonID, id).Return(&domain.Service{ID: id, SalonID: salonID, Name: "Tinte", DurationMinutes: 90, Price: 8000, Active: true}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Service) bool {
			return !s.Active && s.Name == "Tinte" && s.Price == 8000
		})).Return(&domain.Service{ID: id, SalonID: salonID, Name: "Tinte", DurationMinutes: 90, Price: 8000}, nil)

		resp, err := NewService(repo, nopLogger{}).Update(context.Background(), salonID, id, &models.UpdateServiceRequest{Active: ptr.Ptr(false)})
		require.NoError(t, err)

		assert.False(t, resp.Active)
		repo.AssertExpectations(t)
	})

	t.Run("service of another salon", func(t *testing.T) {
		repo := &mockServiceRepo{}
		repo.On("GetByID", mock.Anything, salonID, id).Return(nil, catalogRepo.ErrServiceNotFound)

		_, err := NewService(repo, nopLogger{}).Update(context.Background(), salonID, id, &models.UpdateServiceRequest{})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestList_EmptyIsNotNil(t *testing.T) {
	salonID := uuid.New()
	repo := &mockServiceRepo{}
	repo.On("ListBySalon", mock.Anything, salonID, true).Return(nil, nil)

	resp, err := NewService(repo, nopLogger{}).List(context.Background(), salonID, true)
	require.NoError(t, err)

	assert.NotNil(t, resp.Services)
	assert.Empty(t, resp.Services)
}
