package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client that expects JSON, bounds every attempt by
// timeout and retries transport failures and 5xx replies up to retries times.
//
// Example usage:
//
//	client := utils.NewHTTPClient(10*time.Second, 3)
//	resp, err := client.R().Get("http://localhost:8080/v3/api-docs")
func NewHTTPClient(timeout time.Duration, retries int) *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetRetryCount(retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	if timeout > 0 {
		c.SetTimeout(timeout)
	}

	return &HTTPClient{Client: c}
}
