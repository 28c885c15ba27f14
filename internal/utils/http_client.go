package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://sync-engine:8080", 30*time.Second, 2)
//	resp, err := client.R().SetBody(event).Post("/api/changes")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient that talks JSON to baseURL.
//
// Requests time out after timeout. Transport errors and 5xx responses are
// retried up to retries times with resty's default backoff; 4xx responses
// are returned to the caller untouched.
func NewHTTPClient(baseURL string, timeout time.Duration, retries int) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(100*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Content-Type", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &HTTPClient{Client: client}
}
