package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDate accepts RFC3339, HTML datetime-local values and plain YYYY-MM-DD
// dates. A plain date means the start of that day in local time. The result is UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.UTC(), nil
		}
	}

	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return now.With(t).BeginningOfDay().UTC(), nil
}

// DayRange returns the UTC bounds of the local day containing t
func DayRange(t time.Time) (time.Time, time.Time) {
	day := now.With(t.Local())
	return day.BeginningOfDay().UTC(), day.EndOfDay().UTC()
}

// ParseClock validates an HH:MM wall-clock time and returns minutes since midnight
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CompletionRate formats completed/total as a whole percentage, "0%" when total is 0
func CompletionRate(completed, total int64) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int64(math.Round(float64(completed)/float64(total)*100)))
}
