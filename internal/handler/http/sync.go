// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/utils"
	"github.com/MKhiriev/go-contact-sync/models"
)

// syncFailure is the body returned when a triggered cycle fails.
type syncFailure struct {
	utils.ErrorResponse
	Report models.SyncReport `json:"report"`
}

// syncContacts runs one sync cycle and returns its report. The cycle is
// bound to the request: a client that goes away cancels it.
func (h *Handler) syncContacts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	report, err := h.services.ContactSyncService.SyncContacts(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.syncContacts").Str("cycle_id", report.CycleID).Msg("sync cycle failed")
		_, _ = utils.WriteJSON(w, syncFailure{
			ErrorResponse: utils.ErrorResponse{Error: err.Error(), Kind: string(models.KindOf(err))},
			Report:        report,
		}, statusFromError(err))
		return
	}

	_, _ = utils.WriteJSON(w, report, http.StatusOK)
}

// commitChange accepts a change event from the sync engine. Writing to the
// device is not supported, so the event is acknowledged without effect.
func (h *Handler) commitChange(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var event models.ChangeEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Err(err).Str("func", "*Handler.commitChange").Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON", "")
		return
	}
	if strings.TrimSpace(event.UID) == "" {
		utils.WriteError(w, http.StatusBadRequest, "uid is required", "")
		return
	}

	if err := h.services.ContactSyncService.CommitChange(r.Context(), event); err != nil {
		log.Err(err).Str("func", "*Handler.commitChange").Msg("change was not committed")
		utils.WriteError(w, statusFromError(err), err.Error(), string(models.KindOf(err)))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
