package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339",
			value: "2025-03-10T09:30:00Z",
			want:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			value: "2025-03-10T11:30:00+02:00",
			want:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "datetime-local",
			value: "2025-03-10T09:30",
			want:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local).UTC(),
		},
		{
			name:  "plain date is start of local day",
			value: "2025-03-10",
			want:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local).UTC(),
		},
		{name: "empty", value: " ", wantErr: true},
		{name: "garbage", value: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDayRange(t *testing.T) {
	at := time.Date(2025, 3, 10, 15, 4, 5, 0, time.Local)
	start, end := DayRange(at)

	assert.True(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local).Equal(start))
	assert.True(t, end.After(at))
	assert.True(t, end.Before(time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)))
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = ParseClock("9.30am")
	assert.Error(t, err)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed, total int64
		want             string
	}{
		{completed: 0, total: 0, want: "0%"},
		{completed: 0, total: 5, want: "0%"},
		{completed: 1, total: 3, want: "33%"},
		{completed: 2, total: 3, want: "67%"},
		{completed: 1, total: 8, want: "13%"},
		{completed: 4, total: 4, want: "100%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionRate(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}
