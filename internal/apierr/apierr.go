// Package apierr carries typed errors for upstream REST failures so command
// handlers can map status codes to user-facing messages.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error describes a non-2xx response from an upstream service.
type Error struct {
	Service    string
	StatusCode int
	Status     string
	Body       string
}

func (e *Error) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s API error: %s", e.Service, e.Status)
	}
	return fmt.Sprintf("%s API error: %s - %s", e.Service, e.Status, body)
}

// FromResponse builds an Error from an HTTP response and its body.
func FromResponse(service string, resp *http.Response, body []byte) *Error {
	return &Error{
		Service:    service,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	}
}

// StatusCode returns the upstream status code, or 0 when err is not an
// upstream failure.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsAuth reports whether err is an authentication or authorization failure.
func IsAuth(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
