package prediction

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the wire format for every returned date.
const DateLayout = "2006-01-02"

// ParseDate accepts ISO dates, timestamps and common written forms
// ("03/15/2024", "March 15, 2024"). Ambiguous numeric dates are read month
// first. Time of day and zone are dropped: the result is the calendar date
// as written, at midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return civilDate(t), nil
}

// civilDate truncates t to its calendar date in t's own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
