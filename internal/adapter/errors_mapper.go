package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-ramp-client/models"
)

// mapHTTPError converts a completed response into the client error taxonomy.
// 2xx maps to nil; 401/403 to [ErrUnauthorized]; 404 to [ErrNotFound]; other
// 4xx to [ErrServerRejection] carrying the server's message verbatim; 5xx to
// [ErrTransient] so callers may retry.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrTransient, code, serverMessage(resp))
	default:
		return fmt.Errorf("%w: %s", ErrServerRejection, serverMessage(resp))
	}
}

// serverMessage extracts the human-readable message from an error response,
// preferring the JSON envelope the server uses for business errors.
func serverMessage(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var apiErr models.APIError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	if body == "" {
		return http.StatusText(resp.StatusCode())
	}
	return body
}
