package week

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name       string
		weekEnding time.Time
		want       time.Time
	}{
		{
			name:       "plain Friday",
			weekEnding: time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "week spanning a month boundary",
			weekEnding: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2025, 9, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "week spanning a year boundary",
			weekEnding: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "time of day is ignored",
			weekEnding: time.Date(2025, 12, 19, 17, 45, 12, 0, time.UTC),
			want:       time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.weekEnding); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	monday, friday := Window(time.Date(2025, 12, 19, 9, 30, 0, 0, time.UTC))
	if !monday.Equal(time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Window() monday = %v", monday)
	}
	if !friday.Equal(time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Window() friday = %v", friday)
	}
}

func TestDayDate(t *testing.T) {
	weekEnding := time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)
	for offset, want := range map[int]time.Time{
		0: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		1: time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
		4: time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
	} {
		if got := DayDate(weekEnding, offset); !got.Equal(want) {
			t.Errorf("DayDate(%d) = %v, want %v", offset, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	got := Label(time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC))
	if got != "Week ending 19/12/2025" {
		t.Errorf("Label() = %q", got)
	}
}
