package list_appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.AppointmentListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/salons/{salonId}/appointments", NewHandler(svc, nopLogger{}).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_FiltersPassedToService(t *testing.T) {
	salonID := uuid.New()
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListAppointmentsRequest) bool {
		return req.SalonID == salonID &&
			req.Status != nil && *req.Status == "confirmed" &&
			req.Date != nil && req.Date.Equal(date) &&
			req.IncludeInactive
	})).Return(&models.AppointmentListResponse{
		Appointments: []models.AppointmentResponse{{ID: uuid.New(), Status: "confirmed"}},
		Stats: models.StatsResponse{
			Total:       1,
			ByStatus:    map[string]int{"confirmed": 1},
			IncomeToday: 0,
			IncomeMonth: 12000,
		},
	}, nil)

	w := serve(svc, "/salons/"+salonID.String()+"/appointments?status=confirmed&date=2025-06-02&includeInactive=true")

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.AppointmentListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, 12000.0, resp.Stats.IncomeMonth)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	salonID := uuid.NewString()

	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "malformed salon", target: "/salons/abc/appointments", want: http.StatusBadRequest},
		{name: "malformed date", target: "/salons/" + salonID + "/appointments?date=2025/06/02", want: http.StatusBadRequest},
		{name: "malformed flag", target: "/salons/" + salonID + "/appointments?includeInactive=maybe", want: http.StatusBadRequest},
		{name: "invalid filter", target: "/salons/" + salonID + "/appointments?status=unknown", err: appointments.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/salons/" + salonID + "/appointments", err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("List", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.want, serve(svc, tt.target).Code)
		})
	}
}
