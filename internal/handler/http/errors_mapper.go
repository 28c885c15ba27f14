package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-contact-sync/internal/service"
	"github.com/MKhiriev/go-contact-sync/internal/store"
	"github.com/MKhiriev/go-contact-sync/internal/transport"
	"github.com/MKhiriev/go-contact-sync/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is checked in order; the first match wins. Specific
// sentinels come before the cycle error kinds they are wrapped in.
var errorStatuses = []errorStatus{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},

	{transport.ErrAlreadyConnected, http.StatusLocked},
	{store.ErrAnchorNotFound, http.StatusNotFound},

	{models.ErrConnection, http.StatusBadGateway},
	{models.ErrProtocol, http.StatusBadGateway},
	{models.ErrRecord, http.StatusUnprocessableEntity},
	{models.ErrTransform, http.StatusInternalServerError},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
