package policy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder is shown for any absent or empty value.
const Placeholder = "N/A"

// DefaultStatus is shown when a record carries no status at all.
const DefaultStatus = "Ativa"

// ExpiredStatus is the status label that marks a policy as expired.
const ExpiredStatus = "Vencida"

// DisplayDateLayout is the dd/mm/yyyy layout used for every date shown.
const DisplayDateLayout = "02/01/2006"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DisplayDateLayout,
}

// ParseDate parses the date formats the backend is known to send. Offsets are
// kept so a date is never shifted across midnight.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date value as dd/mm/yyyy. Values that do not parse as a
// date are returned verbatim; absent values become the placeholder.
func FormatDate(v any) string {
	s, ok := scalarString(v)
	if !ok || s == "" {
		return Placeholder
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(DisplayDateLayout)
}

// FormatStatus returns the status label and whether it denotes an expired
// policy. Anything not recognised as expired is treated as active.
func FormatStatus(v any) (string, bool) {
	s, ok := scalarString(v)
	if !ok || s == "" {
		return DefaultStatus, false
	}
	return s, IsExpired(s)
}

// IsExpired compares a status against the expired label, ignoring case.
func IsExpired(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), ExpiredStatus)
}

// FormatList joins a list-valued field with ", ". A plain string is returned
// as-is; nested entries are skipped.
func FormatList(v any) string {
	switch t := v.(type) {
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := scalarString(item); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return Placeholder
		}
		return strings.Join(parts, ", ")
	case []string:
		return FormatList(stringsToAny(t))
	}
	return FormatValue(v)
}

// FormatValue renders a scalar value. Nested structures render as the
// placeholder; they are never shown as raw structured text.
func FormatValue(v any) string {
	s, ok := scalarString(v)
	if !ok || s == "" {
		return Placeholder
	}
	return s
}

// scalarString converts a scalar JSON value to its display text. The boolean
// result is false for nil and for nested structures.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case bool:
		if t {
			return "Sim", true
		}
		return "Não", true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case Record, []any, []string, map[string]any:
		return "", false
	}
	return fmt.Sprint(v), true
}

func isScalarList(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		switch item.(type) {
		case Record, []any, map[string]any:
			return false
		}
	}
	return true
}

func isNested(v any) bool {
	switch v.(type) {
	case Record, map[string]any:
		return true
	case []any:
		return !isScalarList(v)
	}
	return false
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
