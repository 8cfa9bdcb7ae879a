package billing

import (
	"testing"
	"time"
)

func TestCode_AllowsDate(t *testing.T) {
	tests := []struct {
		name       string
		startDate  time.Time
		expiryDate time.Time
		date       time.Time
		want       bool
	}{
		{
			name: "code with no dates (always valid)",
			date: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name:       "date inside window",
			startDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expiryDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			date:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			want:       true,
		},
		{
			name:      "date before start",
			startDate: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
			date:      time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:       "date after expiry",
			expiryDate: time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
			date:       time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
			want:       false,
		},
		{
			name:      "date equal to start is allowed",
			startDate: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
			date:      time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:       "date equal to expiry is allowed",
			expiryDate: time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
			date:       time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
			want:       true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Code{StartDate: tt.startDate, ExpiryDate: tt.expiryDate}
			if got := c.AllowsDate(tt.date); got != tt.want {
				t.Errorf("AllowsDate() = %v, want %v", got, tt.want)
			}
		})
	}
}
