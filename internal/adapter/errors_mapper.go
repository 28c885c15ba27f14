package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a sync engine reply into an error. A rejected record
// (409 duplicate uid, 422 unprocessable payload) is a [models.ErrRecord] so
// the failed cycle is reported with the record kind.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(status)
	}

	switch {
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %w: %s", models.ErrRecord, ErrDuplicateChange, body)
	case status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %w: %s", models.ErrRecord, ErrUnprocessableChange, body)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrEngineUnavailable, status, body)
	default:
		return fmt.Errorf("http %d: %s", status, body)
	}
}
