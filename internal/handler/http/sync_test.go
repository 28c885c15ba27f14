package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-contact-sync/internal/utils"
	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncContacts_Success(t *testing.T) {
	h, stubs := newTestHandler(t)
	stubs.sync.report = models.SyncReport{
		CycleID:     "cycle-1",
		ObjectClass: models.ObjectClassContacts,
		Kind:        models.SessionSlow,
		Events:      2,
		Chunks:      2,
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodPost, "/api/sync/contacts", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.SyncReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "cycle-1", got.CycleID)
	assert.Equal(t, 2, got.Events)

	operator, ok := utils.GetOperatorFromContext(stubs.sync.ctxSeen)
	assert.True(t, ok)
	assert.Equal(t, "ops", operator)
}

func TestSyncContacts_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{
			name:       "connection",
			err:        fmt.Errorf("connect device: %w: refused", models.ErrConnection),
			wantStatus: http.StatusBadGateway,
			wantKind:   "connection",
		},
		{
			name:       "protocol",
			err:        fmt.Errorf("%w: no ready marker", models.ErrProtocol),
			wantStatus: http.StatusBadGateway,
			wantKind:   "protocol",
		},
		{
			name:       "record",
			err:        fmt.Errorf("%w: empty uid", models.ErrRecord),
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "record",
		},
		{
			name:       "transform",
			err:        fmt.Errorf("%w: xsltproc failed", models.ErrTransform),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "transform",
		},
		{
			name:       "consumer",
			err:        errors.New("engine rejected change"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "generic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, stubs := newTestHandler(t)
			stubs.sync.report = models.SyncReport{CycleID: "cycle-2", Events: 1}
			stubs.sync.err = tt.err

			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, authorized(httptest.NewRequest(http.MethodPost, "/api/sync/contacts", nil)))

			require.Equal(t, tt.wantStatus, rec.Code)

			var body syncFailure
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.err.Error(), body.Error)
			assert.Equal(t, "cycle-2", body.Report.CycleID)
			assert.Equal(t, 1, body.Report.Events)
		})
	}
}

func TestCommitChange(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		commitErr     error
		wantStatus    int
		wantCommitted int
	}{
		{
			name:          "acknowledged",
			body:          `{"uid":"A","change_type":"deleted","object_type":"contact"}`,
			wantStatus:    http.StatusNoContent,
			wantCommitted: 1,
		},
		{
			name:       "invalid json",
			body:       `{"uid":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing uid",
			body:       `{"change_type":"added"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:          "service failure",
			body:          `{"uid":"A"}`,
			commitErr:     fmt.Errorf("%w: broken pipe", models.ErrConnection),
			wantStatus:    http.StatusBadGateway,
			wantCommitted: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, stubs := newTestHandler(t)
			stubs.sync.commitErr = tt.commitErr

			req := authorized(httptest.NewRequest(http.MethodPost, "/api/changes", strings.NewReader(tt.body)))
			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Len(t, stubs.sync.committed, tt.wantCommitted)
		})
	}
}

func TestCommitChange_SignedBody(t *testing.T) {
	h, stubs := newTestHandler(t)
	h.signer = utils.NewSigner("shared")
	router := h.Init()
	body := `{"uid":"A","change_type":"modified"}`

	req := authorized(httptest.NewRequest(http.MethodPost, "/api/changes", strings.NewReader(body)))
	req.Header.Set(hashHeader, utils.HashString(body, "shared"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = authorized(httptest.NewRequest(http.MethodPost, "/api/changes", strings.NewReader(body)))
	req.Header.Set(hashHeader, utils.HashString(body, "other"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Len(t, stubs.sync.committed, 1)
}
