package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Bella"}`},
		{name: "unknown field", body: `{"name":"Bella","extra":1}`, wantErr: true},
		{name: "two objects", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "not json", body: `name=Bella`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload
			err := DecodeJSON(r, &p)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Bella", p.Name)
		})
	}
}

func TestRespondValidationError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondValidationError(w, "invalid", map[string]string{"clientEmail": "email is invalid"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "invalid", body.Error)
	assert.Equal(t, "email is invalid", body.Fields["clientEmail"])
}

func TestParams(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/?date=2025-06-02&serviceId=bad&includeInactive=true", nil)
	r = mux.SetURLVars(r, map[string]string{"salonId": id.String()})

	got, err := PathUUID(r, "salonId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = PathUUID(r, "appointmentId")
	assert.ErrorIs(t, err, ErrMissingParam)

	date, err := QueryDate(r, "date")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", date.Format("2006-01-02"))

	_, err = QueryUUID(r, "serviceId")
	assert.Error(t, err)

	missing, err := QueryUUID(r, "promotionId")
	require.NoError(t, err)
	assert.Nil(t, missing)

	flag, err := QueryBool(r, "includeInactive")
	require.NoError(t, err)
	assert.True(t, flag)
}
