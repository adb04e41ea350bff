package legacy

import (
	"errors"
	"testing"
	"time"
)

func TestString(t *testing.T) {
	r := Row{"  padded  ", []byte("BYTES01  "), nil, ""}
	if got := String(r, 0, ""); got != "padded" {
		t.Errorf("String(0) = %q", got)
	}
	if got := String(r, 1, ""); got != "BYTES01" {
		t.Errorf("byte column not normalized: %q", got)
	}
	if got := String(r, 2, "fallback"); got != "fallback" {
		t.Errorf("nil fallback: %q", got)
	}
	if got := String(r, 3, "fallback"); got != "fallback" {
		t.Errorf("blank fallback: %q", got)
	}
	if got := String(r, 99, "oob"); got != "oob" {
		t.Errorf("out-of-range fallback: %q", got)
	}
}

func TestStringPtr(t *testing.T) {
	r := Row{"value", "   ", nil}
	if p := StringPtr(r, 0); p == nil || *p != "value" {
		t.Error("value not returned")
	}
	if p := StringPtr(r, 1); p != nil {
		t.Error("blank should be nil")
	}
	if p := StringPtr(r, 2); p != nil {
		t.Error("null should be nil")
	}
}

func TestFloat(t *testing.T) {
	r := Row{12.5, int64(7), " 3.25 ", nil, "abc", []byte("9.5")}
	cases := []struct {
		idx  int
		want float64
	}{
		{0, 12.5}, {1, 7}, {2, 3.25}, {3, -1}, {5, 9.5},
	}
	for _, c := range cases {
		got, err := Float(r, c.idx, -1)
		if err != nil {
			t.Errorf("Float(%d): %v", c.idx, err)
			continue
		}
		if got != c.want {
			t.Errorf("Float(%d) = %v, want %v", c.idx, got, c.want)
		}
	}
	if _, err := Float(r, 4, 0); !errors.Is(err, ErrMalformed) {
		t.Errorf("non-numeric should be ErrMalformed, got %v", err)
	}
}

func TestInt(t *testing.T) {
	r := Row{int64(30), "15", 2.9, nil}
	if got, _ := Int(r, 0, 0); got != 30 {
		t.Errorf("Int(0) = %d", got)
	}
	if got, _ := Int(r, 1, 0); got != 15 {
		t.Errorf("Int(1) = %d", got)
	}
	if got, _ := Int(r, 2, 0); got != 2 {
		t.Errorf("Int(2) = %d", got)
	}
	if got, _ := Int(r, 3, 45); got != 45 {
		t.Errorf("Int(3) = %d", got)
	}
}

func TestDate(t *testing.T) {
	native := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r := Row{native, "2024-03-01", "2024-03-01 10:30:00", nil, "not-a-date"}

	if got, err := Date(r, 0); err != nil || !got.Equal(native) {
		t.Errorf("native time: %v, %v", got, err)
	}
	if got, err := Date(r, 1); err != nil || got.Day() != 1 {
		t.Errorf("date-only string: %v, %v", got, err)
	}
	if got, err := Date(r, 2); err != nil || got.Hour() != 10 {
		t.Errorf("datetime string: %v, %v", got, err)
	}
	if got, err := Date(r, 3); err != nil || got != nil {
		t.Errorf("null should be nil: %v, %v", got, err)
	}
	if _, err := Date(r, 4); !errors.Is(err, ErrMalformed) {
		t.Errorf("garbage should be ErrMalformed, got %v", err)
	}
}
