package get_available_slots

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

	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*getAvailableSlots.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/salons/{salonId}/available-slots", NewHandler(uc, nopLogger{}).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OpenDay(t *testing.T) {
	salonID := uuid.New()
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{SalonID: salonID, Date: date}).
		Return(&getAvailableSlots.Response{
			SalonID:   salonID,
			Date:      date,
			Weekday:   time.Monday,
			DayStatus: scheduling.DayStatusOpen,
			Slots:     []types.TimeString{"09:00", "09:30", "14:00"},
		}, nil)

	w := serve(uc, "/salons/"+salonID.String()+"/available-slots?date=2025-06-02")

	require.Equal(t, http.StatusOK, w.Code)
	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "open", resp.DayStatus)
	assert.Equal(t, 1, resp.Weekday)
	assert.Equal(t, []string{"09:00", "09:30", "14:00"}, resp.Slots)
}

func TestHandle_ClosedDayReturnsEmptySlots(t *testing.T) {
	salonID := uuid.New()

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{
		SalonID:   salonID,
		Date:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Weekday:   time.Tuesday,
		DayStatus: scheduling.DayStatusClosed,
		Slots:     []types.TimeString{},
	}, nil)

	w := serve(uc, "/salons/"+salonID.String()+"/available-slots?date=2025-06-03")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, mustField(t, w, "slots"))
}

func TestHandle_Errors(t *testing.T) {
	salonID := uuid.NewString()

	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "missing date", target: "/salons/" + salonID + "/available-slots", want: http.StatusBadRequest},
		{name: "malformed date", target: "/salons/" + salonID + "/available-slots?date=02.06.2025", want: http.StatusBadRequest},
		{name: "malformed salon", target: "/salons/abc/available-slots?date=2025-06-02", want: http.StatusBadRequest},
		{name: "salon not found", target: "/salons/" + salonID + "/available-slots?date=2025-06-02", err: getAvailableSlots.ErrSalonNotFound, want: http.StatusNotFound},
		{name: "date in past", target: "/salons/" + salonID + "/available-slots?date=2025-06-02", err: getAvailableSlots.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "internal", target: "/salons/" + salonID + "/available-slots?date=2025-06-02", err: getAvailableSlots.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(uc, tt.target)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func mustField(t *testing.T, w *httptest.ResponseRecorder, name string) string {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	return string(raw[name])
}
