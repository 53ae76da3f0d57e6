package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent is the user agent string used for upstream requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// NewHTTPClient returns a resty client with browser-like default headers.
func NewHTTPClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", DefaultUserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9")
}

// DoGet performs a GET request and returns the response body. Responses
// with status >= 400 are returned as *ErrHTTP.
func DoGet(ctx context.Context, client *resty.Client, url string, headers map[string]string) ([]byte, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode() >= 400 {
		body := resp.Body()
		if len(body) > 1024 {
			body = body[:1024]
		}
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       string(body),
		}
	}
	return resp.Body(), nil
}
