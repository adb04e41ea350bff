package legacy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformed marks a legacy value that failed to coerce to its expected
// scalar type. Recoverable at record granularity: callers skip and count.
var ErrMalformed = errors.New("malformed legacy value")

// raw normalizes driver output; legacy char columns arrive as []byte with
// trailing padding.
func raw(r Row, i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	if b, ok := r[i].([]byte); ok {
		return string(b)
	}
	return r[i]
}

// String returns the trimmed string at position i, or fallback when null or
// blank.
func String(r Row, i int, fallback string) string {
	v := raw(r, i)
	if v == nil {
		return fallback
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	if s == "" {
		return fallback
	}
	return s
}

// StringPtr returns a pointer to the trimmed string, or nil when null/blank.
func StringPtr(r Row, i int) *string {
	s := String(r, i, "")
	if s == "" {
		return nil
	}
	return &s
}

// Float coerces position i to float64. Null yields fallback; a non-numeric
// value yields ErrMalformed.
func Float(r Row, i int, fallback float64) (float64, error) {
	switch v := raw(r, i).(type) {
	case nil:
		return fallback, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return fallback, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: col %d: %q is not numeric", ErrMalformed, i, s)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: col %d: unexpected type %T", ErrMalformed, i, v)
	}
}

// Int coerces position i to int.
func Int(r Row, i int, fallback int) (int, error) {
	f, err := Float(r, i, float64(fallback))
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Date returns the time at position i, or nil when null. Legacy drivers hand
// dates back as time.Time or ISO strings.
func Date(r Row, i int) (*time.Time, error) {
	switch v := raw(r, i).(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t, nil
			}
		}
		return nil, fmt.Errorf("%w: col %d: %q is not a date", ErrMalformed, i, s)
	default:
		return nil, fmt.Errorf("%w: col %d: unexpected type %T", ErrMalformed, i, v)
	}
}
