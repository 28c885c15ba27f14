package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getAnchor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	objectClass := chi.URLParam(r, "objectClass")

	anchor, err := h.services.SyncStateService.GetAnchor(r.Context(), objectClass)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getAnchor").Str("object_class", objectClass).Msg("error getting anchor")
		utils.WriteError(w, statusFromError(err), "error getting anchor", "")
		return
	}

	_, _ = utils.WriteJSON(w, anchor, http.StatusOK)
}

func (h *Handler) resetAnchor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	objectClass := chi.URLParam(r, "objectClass")

	if err := h.services.SyncStateService.ResetAnchor(r.Context(), objectClass); err != nil {
		log.Err(err).Str("func", "*Handler.resetAnchor").Str("object_class", objectClass).Msg("error resetting anchor")
		utils.WriteError(w, statusFromError(err), err.Error(), "")
		return
	}

	operator, _ := utils.GetOperatorFromContext(r.Context())
	log.Info().Str("object_class", objectClass).Str("operator", operator).Msg("anchor reset by operator")
	w.WriteHeader(http.StatusNoContent)
}
