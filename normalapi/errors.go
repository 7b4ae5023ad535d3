package normalapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Error kinds. An *APIError unwraps to exactly one of them.
var (
	// ErrBadRequest is reported for an effective status of 400
	ErrBadRequest = errors.New("bad request")
	// ErrForbidden is reported for an effective status of 403
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is reported for an effective status of 404
	ErrNotFound = errors.New("not found")
	// ErrInternalServerError is reported for an effective status of 500
	ErrInternalServerError = errors.New("internal server error")

	// ErrMissingField indicates a successful response lacked a required field
	ErrMissingField = errors.New("missing field")
	// ErrInvalidField indicates a field could not be converted to its documented type
	ErrInvalidField = errors.New("invalid field")
)

// APIError is a failure the API reported, or a request rejected before it
// was sent.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func newAPIError(status int, message string) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    message,
		kind:       kindForStatus(status),
	}
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("normal-api: %v (status %d)", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("normal-api: %v (status %d): %s", e.kind, e.StatusCode, e.Message)
}

// Unwrap returns the error kind so errors.Is(err, ErrNotFound) works.
func (e *APIError) Unwrap() error {
	return e.kind
}

// IsBadRequest checks if the error indicates a rejected request
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsForbidden checks if the error indicates a forbidden request
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// HTTPError is returned for any response that cannot be classified: a
// non-JSON body of any status, or a JSON body with an unmapped status.
type HTTPError struct {
	StatusCode  int
	ContentType string
	Body        string
	Response    *Response
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("normal-api: unexpected response: status %d (%s): %s", e.StatusCode, e.ContentType, e.Body)
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return nil
	}
}

// classify decides the outcome of a completed response and returns the
// decoded body on success. The status field of a JSON body takes precedence
// over the transport status.
func classify(resp *Response) (map[string]any, error) {
	text, err := resp.Text()
	if err != nil {
		return nil, err
	}

	httpErr := &HTTPError{
		StatusCode:  resp.StatusCode,
		ContentType: resp.ContentType,
		Body:        text,
		Response:    resp,
	}
	if !resp.IsJSON() {
		return nil, httpErr
	}

	data, err := resp.JSON()
	if err != nil {
		return nil, httpErr
	}

	status := resp.StatusCode
	if s, ok := jsonStatus(data["status"]); ok {
		status = s
	}

	if status == http.StatusOK {
		return data, nil
	}
	if kindForStatus(status) == nil {
		httpErr.StatusCode = status
		return nil, httpErr
	}

	message := text
	if raw, ok := data["error"]; ok && raw != nil {
		message = stringify(raw)
	}
	return nil, newAPIError(status, message)
}

// jsonStatus reads the optional integer status field of a JSON body.
func jsonStatus(v any) (int, bool) {
	switch s := v.(type) {
	case json.Number:
		n, err := strconv.Atoi(s.String())
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return n, err == nil
	case float64:
		return int(s), true
	default:
		return 0, false
	}
}
