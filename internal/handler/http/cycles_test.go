package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCycles(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		wantStatus      int
		wantObjectClass string
		wantLimit       uint64
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, wantObjectClass: models.ObjectClassContacts},
		{name: "explicit", query: "?object_class=com.apple.Calendars&limit=5", wantStatus: http.StatusOK, wantObjectClass: "com.apple.Calendars", wantLimit: 5},
		{name: "bad limit", query: "?limit=-1", wantStatus: http.StatusBadRequest},
		{name: "limit not a number", query: "?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, stubs := newTestHandler(t)
			stubs.state.cycles = []models.CycleRecord{{CycleID: "c1", Result: models.CycleSucceeded}}

			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/api/cycles"+tt.query, nil)))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantObjectClass, stubs.state.objectClass)
			assert.Equal(t, tt.wantLimit, stubs.state.limit)

			var got []models.CycleRecord
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			require.Len(t, got, 1)
			assert.Equal(t, "c1", got[0].CycleID)
		})
	}
}

func TestListCycles_EmptyHistory(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/api/cycles", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListCycles_StoreFailure(t *testing.T) {
	h, stubs := newTestHandler(t)
	stubs.state.cyclesErr = errors.New("database is locked")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodGet, "/api/cycles", nil)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
