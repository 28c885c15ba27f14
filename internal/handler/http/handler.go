package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/service"
	"github.com/MKhiriev/go-contact-sync/internal/utils"
)

type Handler struct {
	services *service.Services
	metrics  http.Handler
	signer   *utils.Signer

	logger *logger.Logger
}

// NewHandler creates the control API handler. metrics is mounted on
// /metrics when not nil. A non-empty hashKey makes the handler verify the
// HashSHA256 header of request bodies.
func NewHandler(services *service.Services, metrics http.Handler, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  metrics,
		signer:   utils.NewSigner(hashKey),
		logger:   logger,
	}
}
