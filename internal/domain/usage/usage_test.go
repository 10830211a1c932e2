package usage

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/vaidya/internal/domain"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"", PeriodDay, false},
		{"day", PeriodDay, false},
		{"month", PeriodMonth, false},
		{"week", "", true},
		{"total", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidPeriod) {
					t.Fatalf("expected ErrInvalidPeriod, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeriod_Bounds(t *testing.T) {
	at := time.Date(2026, 12, 31, 18, 30, 0, 0, time.UTC)

	start, end := PeriodDay.Bounds(at)
	if !start.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("day start = %v", start)
	}
	if !end.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("day end = %v", end)
	}

	start, end = PeriodMonth.Bounds(at)
	if !start.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month start = %v", start)
	}
	if !end.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month end = %v", end)
	}
}

func TestReport_Exhausted(t *testing.T) {
	tests := []struct {
		name      string
		limit     int64
		remaining int64
		want      bool
	}{
		{"spent", 5000, 0, true},
		{"left", 5000, 100, false},
		{"unlimited", 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport(PeriodDay, time.Time{}, time.Time{}, 0, tt.limit, tt.remaining)
			if r.Exhausted() != tt.want {
				t.Errorf("Exhausted() = %v, want %v", r.Exhausted(), tt.want)
			}
		})
	}
}
