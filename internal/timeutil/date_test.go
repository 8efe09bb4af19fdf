package timeutil

import (
	"testing"
	"time"
)

func TestDayDiff(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "same day ignores time of day",
			a:    time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "one day apart",
			a:    time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "thirty days",
			a:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			want: 30,
		},
		{
			name: "negative when a precedes b",
			a:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
			want: -7,
		},
		{
			name: "across year boundary",
			a:    time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayDiff(tt.a, tt.b); got != tt.want {
				t.Errorf("DayDiff() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	base := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	got := AddDays(base, -30)
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AddDays(-30) = %v, want %v", got, want)
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 6, 15, 18, 45, 12, 999, time.Local)
	got := DateOnly(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("DateOnly() kept a time-of-day component: %v", got)
	}
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 15 {
		t.Errorf("DateOnly() changed the date: %v", got)
	}
}
