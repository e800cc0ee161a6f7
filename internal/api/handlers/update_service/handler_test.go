package update_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Update(ctx context.Context, salonID, id uuid.UUID, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	args := m.Called(ctx, salonID, id, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.ServiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, serviceID, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/salons/{salonId}/services/{serviceId}", NewHandler(svc, nopLogger{}).Handle)

	target := "/salons/" + uuid.NewString() + "/services/" + serviceID
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, target, strings.NewReader(body)))
	return w
}

func TestHandle(t *testing.T) {
	invalid := domain.ValidationErrors{}
	invalid.Add("price", "price must not be negative")

	tests := []struct {
		name string
		resp *models.ServiceResponse
		err  error
		want int
	}{
		{name: "updated", resp: &models.ServiceResponse{ID: uuid.New(), Price: 4500, Active: false}, want: http.StatusOK},
		{name: "not found", err: catalog.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "invalid", err: invalid.Wrap(domain.ErrInvalidService), want: http.StatusUnprocessableEntity},
		{name: "internal", err: catalog.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.resp != nil {
				svc.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tt.resp, nil)
			} else {
				svc.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := serve(svc, uuid.NewString(), `{"price":4500,"active":false}`)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_MalformedServiceID(t *testing.T) {
	svc := &mockService{}

	assert.Equal(t, http.StatusBadRequest, serve(svc, "42", `{"price":4500}`).Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
