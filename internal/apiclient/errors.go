package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnreachable marks transport failures where no response arrived,
	// timeouts included. Always retryable by re-triggering the action.
	ErrUnreachable = errors.New("cannot reach server")

	// ErrSessionExpired is returned when the refresh-and-retry path also
	// fails. Stored credentials have been cleared by the time callers see
	// it; the expected reaction is a redirect to the login screen.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx response with its decoded error payload.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Fields) > 0 {
		return flattenFields(e.Fields)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Detail returns the server-supplied detail message if err carries one.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return ""
}

// decodeAPIError tolerates every error payload shape the backend emits: a
// bare string, {"detail"}, {"message"}, {"error"}, {"non_field_errors":
// [...]}, and DRF field-error maps.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return apiErr
	}

	var asString string
	if json.Unmarshal(trimmed, &asString) == nil {
		apiErr.Detail = asString
		return apiErr
	}

	var raw map[string]json.RawMessage
	if json.Unmarshal(trimmed, &raw) != nil {
		return apiErr
	}

	for _, key := range []string{"detail", "message", "error"} {
		if v, ok := raw[key]; ok {
			var s string
			if json.Unmarshal(v, &s) == nil && s != "" {
				apiErr.Detail = s
				return apiErr
			}
		}
	}

	if v, ok := raw["non_field_errors"]; ok {
		if msg := decodeErrorValue(v); msg != "" {
			apiErr.Detail = msg
			return apiErr
		}
	}

	fields := make(map[string][]string)
	for field, v := range raw {
		var list []string
		if json.Unmarshal(v, &list) == nil {
			fields[field] = list
			continue
		}
		var s string
		if json.Unmarshal(v, &s) == nil {
			fields[field] = []string{s}
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}
	return apiErr
}

func decodeErrorValue(v json.RawMessage) string {
	var list []string
	if json.Unmarshal(v, &list) == nil {
		return strings.Join(list, ", ")
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	return ""
}

// flattenFields joins field-level validation errors into one displayable
// line: "field: message; field: message".
func flattenFields(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(fields[k], ", ")))
	}
	return strings.Join(parts, "; ")
}
