package normalapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// fields is a decoded JSON object as returned by the API.
type fields map[string]any

// absent reports whether v stands for a missing value. The API sends the
// literal strings "undefined" and "null" instead of JSON null.
func absent(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return s == "undefined" || s == "null"
	default:
		return false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}

// str returns the field as a string, or "" when it is absent.
func (f fields) str(key string) string {
	v := f[key]
	if absent(v) {
		return ""
	}
	return stringify(v)
}

// optional returns nil when the field is absent.
func (f fields) optional(key string) *string {
	v := f[key]
	if absent(v) {
		return nil
	}
	s := stringify(v)
	return &s
}

// integer parses a required numeric field.
func (f fields) integer(key string) (int64, error) {
	v := f[key]
	if absent(v) {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return parseInt(key, v)
}

// optionalInt parses a numeric field that may be absent.
func (f fields) optionalInt(key string) (*int64, error) {
	v := f[key]
	if absent(v) {
		return nil, nil
	}
	n, err := parseInt(key, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// list splits a comma separated field. The value is trimmed as a whole but
// items keep their spacing. An absent field is an empty list.
func (f fields) list(key string) []string {
	s := strings.TrimSpace(f.str(key))
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func parseInt(key string, v any) (int64, error) {
	var raw string
	switch n := v.(type) {
	case json.Number:
		raw = n.String()
	case string:
		raw = strings.TrimSpace(n)
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("%w: %q is not an integer: %v", ErrInvalidField, key, n)
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %q has type %T", ErrInvalidField, key, v)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer: %q", ErrInvalidField, key, raw)
	}
	return n, nil
}

// required returns the string form of a field that must be present.
func (f fields) required(key string) (string, error) {
	v, ok := f[key]
	if !ok || absent(v) {
		return "", fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return stringify(v), nil
}
