package cloudsql

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from a Google API. The body follows the
// google.rpc.Status JSON mapping.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string        `json:"status"`
	Message    string        `json:"message"`
	Details    []ErrorDetail `json:"errors"`
}

type ErrorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

var _ error = &APIError{}

func NewAPIError(method string, url string, statusCode int, respBody []byte) *APIError {
	apiErr := &APIError{}
	body := struct {
		Error *APIError `json:"error"`
	}{Error: apiErr}
	if err := json.Unmarshal(respBody, &body); err != nil || apiErr.Message == "" {
		apiErr.Message = truncateString(strings.TrimSpace(string(respBody)), 512)
	}
	apiErr.Method = method
	apiErr.URL = url
	apiErr.StatusCode = statusCode
	if apiErr.Status == "" {
		apiErr.Status = http.StatusText(statusCode)
	}
	return apiErr
}

func (e *APIError) Error() string {
	reasons := []string{}
	for _, detail := range e.Details {
		if detail.Reason != "" {
			reasons = append(reasons, detail.Reason)
		}
	}
	msg := fmt.Sprintf("%s %s failed with %d %s: %s", e.Method, e.URL, e.StatusCode, e.Status, e.Message)
	if len(reasons) > 0 {
		msg += " (" + strings.Join(reasons, ", ") + ")"
	}
	return msg
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsConflict()
}

func truncateString(s string, length int) string {
	if len(s) > length {
		return s[:length]
	}
	return s
}
