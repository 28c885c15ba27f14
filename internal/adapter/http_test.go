// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/utils"
	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

func newTestConsumer(t *testing.T, serverURL string) ChangeConsumer {
	t.Helper()
	cfg := config.Adapter{
		HTTPAddress:    serverURL,
		RequestTimeout: time.Second,
		HashKey:        testHashKey,
	}

	c, err := NewHTTPChangeConsumer(cfg, logger.Nop())
	require.NoError(t, err)
	return c
}

func testEvent() models.ChangeEvent {
	return models.NewChangeEvent(models.ContactDocument{
		UID:     "A",
		Payload: []byte("<contact><Uid><content>A</content></Uid></contact>"),
	}, models.ChangeAdded)
}

// ── OnChange ────────────────────────────────────────────────────────────────

func TestOnChange_Success(t *testing.T) {
	event := testEvent()
	ctx := utils.WithCycleID(context.Background(), "cycle-1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/changes", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "cycle-1", r.Header.Get(CycleIDHeader))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, utils.HashString(string(body), testHashKey), r.Header.Get(HashHeader))

		var got models.ChangeEvent
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, event, got)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := newTestConsumer(t, srv.URL).OnChange(ctx, event)
	require.NoError(t, err)
}

func TestOnChange_NoHashKey_NoSignature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(HashHeader))
		assert.Empty(t, r.Header.Get(CycleIDHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewHTTPChangeConsumer(config.Adapter{HTTPAddress: srv.URL, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, c.OnChange(context.Background(), testEvent()))
}

func TestOnChange_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantErr  error
		wantKind models.ErrorKind
	}{
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrBadRequest, wantKind: models.ErrorKindGeneric},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized, wantKind: models.ErrorKindGeneric},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrForbidden, wantKind: models.ErrorKindGeneric},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound, wantKind: models.ErrorKindGeneric},
		{name: "duplicate uid", status: http.StatusConflict, wantErr: ErrDuplicateChange, wantKind: models.ErrorKindRecord},
		{name: "unprocessable payload", status: http.StatusUnprocessableEntity, wantErr: ErrUnprocessableChange, wantKind: models.ErrorKindRecord},
		{name: "internal", status: http.StatusInternalServerError, wantErr: ErrEngineUnavailable, wantKind: models.ErrorKindGeneric},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrEngineUnavailable, wantKind: models.ErrorKindGeneric},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantErr: ErrEngineUnavailable, wantKind: models.ErrorKindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			err := newTestConsumer(t, srv.URL).OnChange(context.Background(), testEvent())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, models.KindOf(err))
			assert.Contains(t, err.Error(), "deliver change A")
		})
	}
}

func TestCallbacks_DeliveredOnceOnServerError(t *testing.T) {
	tests := []struct {
		name string
		call func(c ChangeConsumer) error
	}{
		{name: "change", call: func(c ChangeConsumer) error { return c.OnChange(context.Background(), testEvent()) }},
		{name: "cycle complete", call: func(c ChangeConsumer) error { return c.OnCycleComplete(context.Background()) }},
		{name: "cycle error", call: func(c ChangeConsumer) error {
			return c.OnCycleError(context.Background(), models.ErrorKindProtocol, "stuck device")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			err := tt.call(newTestConsumer(t, srv.URL))

			assert.ErrorIs(t, err, ErrEngineUnavailable)
			assert.Equal(t, int32(1), hits.Load())
		})
	}
}

func TestOnChange_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestConsumer(t, srv.URL).OnChange(context.Background(), testEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestOnChange_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestConsumer(t, url).OnChange(context.Background(), testEvent())
	require.Error(t, err)
}

// ── OnCycleComplete / OnCycleError ──────────────────────────────────────────

func TestOnCycleComplete(t *testing.T) {
	ctx := utils.WithCycleID(context.Background(), "cycle-2")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cycles/complete", r.URL.Path)

		var body cycleComplete
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cycle-2", body.CycleID)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestConsumer(t, srv.URL).OnCycleComplete(ctx))
}

func TestOnCycleError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cycles/error", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "record", body["kind"])
		assert.Equal(t, "record error: missing uid", body["message"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestConsumer(t, srv.URL).OnCycleError(context.Background(), models.ErrorKindRecord, "record error: missing uid")
	require.NoError(t, err)
}

func TestOnCycleError_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newTestConsumer(t, srv.URL).OnCycleError(context.Background(), models.ErrorKindProtocol, "x")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── NewHTTPChangeConsumer ───────────────────────────────────────────────────

func TestNewHTTPChangeConsumer_InvalidAddress(t *testing.T) {
	for _, addr := range []string{"", "   ", "http://"} {
		_, err := NewHTTPChangeConsumer(config.Adapter{HTTPAddress: addr}, logger.Nop())
		assert.ErrorIs(t, err, ErrInvalidAddress, "address %q", addr)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: "https://engine.local/", want: "https://engine.local"},
		{in: " http://engine:9000 ", want: "http://engine:9000"},
	}

	for _, tt := range tests {
		got, err := normalizeBaseURL(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
