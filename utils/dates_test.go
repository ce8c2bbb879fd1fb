package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	d := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05", DateKey(d))
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"friday", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), "2024-03-10"},
		{"sunday itself", time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), "2024-03-10"},
		{"monday crosses month", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "2024-03-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			assert.Equal(t, tt.want, DateKey(got))
			assert.Equal(t, 0, got.Hour())
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	got := StartOfMonth(time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-01", DateKey(got))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 18, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, -3, DaysBetween(b, a))
}
