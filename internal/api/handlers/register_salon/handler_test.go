package register_salon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/salons"
	"github.com/m04kA/SMC-SalonService/internal/service/salons/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(ctx context.Context, req *models.RegisterSalonRequest) (*models.SalonResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.SalonResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{"name":"Bella","ownerName":"Maria","email":"bella@example.com","phone":"+79001234567"}`

func serve(svc *mockService, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodPost, "/salons", strings.NewReader(body)))
	return w
}

func TestHandle_Registered(t *testing.T) {
	salonID := uuid.New()

	svc := &mockService{}
	svc.On("Register", mock.Anything, mock.MatchedBy(func(req *models.RegisterSalonRequest) bool {
		return req.Name == "Bella" && req.Email == "bella@example.com"
	})).Return(&models.SalonResponse{ID: salonID, Name: "Bella", Schedule: []models.DayScheduleDTO{}}, nil)

	w := serve(svc, body)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.SalonResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, salonID, resp.ID)
}

func TestHandle_ValidationError(t *testing.T) {
	fields := domain.ValidationErrors{}
	fields.Add("email", "email is invalid")

	svc := &mockService{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, fields.Wrap(salons.ErrInvalidInput))

	w := serve(svc, body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "email is invalid", resp.Fields["email"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "duplicate email", err: salons.ErrDuplicateEmail, want: http.StatusConflict},
		{name: "internal", err: salons.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Register", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.want, serve(svc, body).Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, serve(&mockService{}, `{"name":1}`).Code)
}
