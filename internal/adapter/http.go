package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/utils"
	"github.com/MKhiriev/go-contact-sync/models"
)

const (
	// HashHeader carries the HMAC-SHA256 of the request body.
	HashHeader = "HashSHA256"

	// CycleIDHeader carries the identifier of the sync cycle.
	CycleIDHeader = "X-Cycle-ID"

	changesPath       = "/api/changes"
	cycleCompletePath = "/api/cycles/complete"
	cycleErrorPath    = "/api/cycles/error"

	// Callbacks are delivered at most once; a failed post ends the cycle.
	noRetries = 0
)

// cycleComplete is the body posted when a cycle succeeds.
type cycleComplete struct {
	CycleID string `json:"cycle_id,omitempty"`
}

// cycleFailure is the body posted when a cycle fails.
type cycleFailure struct {
	CycleID string `json:"cycle_id,omitempty"`
	models.CycleError
}

type httpChangeConsumer struct {
	client *utils.HTTPClient
	signer *utils.Signer

	logger *logger.Logger
}

// NewHTTPChangeConsumer constructs an HTTP/REST implementation of
// [ChangeConsumer] that posts JSON to the sync engine at cfg.HTTPAddress.
// When cfg.HashKey is set, every body is signed in the HashSHA256 header.
//
// Returns [ErrInvalidAddress] if cfg.HTTPAddress is empty or cannot be parsed
// as a valid URL.
func NewHTTPChangeConsumer(cfg config.Adapter, logger *logger.Logger) (ChangeConsumer, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpChangeConsumer{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout, noRetries),
		signer: utils.NewSigner(cfg.HashKey),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// OnChange implements [ChangeConsumer]. It POSTs the event to /api/changes.
func (h *httpChangeConsumer) OnChange(ctx context.Context, event models.ChangeEvent) error {
	if err := h.post(ctx, changesPath, event); err != nil {
		return fmt.Errorf("deliver change %s: %w", event.UID, err)
	}
	return nil
}

// OnCycleComplete implements [ChangeConsumer]. It POSTs to /api/cycles/complete.
func (h *httpChangeConsumer) OnCycleComplete(ctx context.Context) error {
	cycleID, _ := utils.GetCycleIDFromContext(ctx)
	if err := h.post(ctx, cycleCompletePath, cycleComplete{CycleID: cycleID}); err != nil {
		return fmt.Errorf("report cycle completion: %w", err)
	}
	return nil
}

// OnCycleError implements [ChangeConsumer]. It POSTs the failure kind and
// message to /api/cycles/error.
func (h *httpChangeConsumer) OnCycleError(ctx context.Context, kind models.ErrorKind, message string) error {
	cycleID, _ := utils.GetCycleIDFromContext(ctx)
	body := cycleFailure{
		CycleID:    cycleID,
		CycleError: models.CycleError{Kind: kind, Message: message},
	}
	if err := h.post(ctx, cycleErrorPath, body); err != nil {
		return fmt.Errorf("report cycle error: %w", err)
	}
	return nil
}

func (h *httpChangeConsumer) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}

	req := h.client.R().
		SetContext(ctx).
		SetBody(payload)
	if h.signer.Enabled() {
		req.SetHeader(HashHeader, h.signer.Sign(payload))
	}
	if cycleID, ok := utils.GetCycleIDFromContext(ctx); ok {
		req.SetHeader(CycleIDHeader, cycleID)
	}

	resp, err := req.Post(path)
	if err != nil {
		h.logger.Err(err).Str("func", "httpChangeConsumer.post").Str("path", path).Msg("request to sync engine failed")
		return fmt.Errorf("post %s: %w", path, err)
	}

	return mapHTTPError(resp)
}

var _ ChangeConsumer = (*httpChangeConsumer)(nil)
