package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/utils"
	"github.com/MKhiriev/go-contact-sync/models"
)

// listCycles serves GET /api/cycles?object_class=...&limit=...
// object_class defaults to the contacts class.
func (h *Handler) listCycles(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	query := r.URL.Query()

	objectClass := query.Get("object_class")
	if objectClass == "" {
		objectClass = models.ObjectClassContacts
	}

	var limit uint64
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer", "")
			return
		}
		limit = parsed
	}

	cycles, err := h.services.SyncStateService.ListCycles(r.Context(), objectClass, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listCycles").Msg("error listing cycles")
		utils.WriteError(w, statusFromError(err), "error listing cycles", "")
		return
	}
	if cycles == nil {
		cycles = []models.CycleRecord{}
	}

	_, _ = utils.WriteJSON(w, cycles, http.StatusOK)
}
