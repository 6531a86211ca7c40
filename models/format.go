package models

import (
	"fmt"
	"time"
)

// Wire layouts for calendar dates and zone-less datetimes
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// FormatDate renders t as YYYY-MM-DD, or nil when t is unset
func FormatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// FormatDateTime renders t as YYYY-MM-DDTHH:MM:SS, or nil when t is unset
func FormatDateTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateTimeLayout)
	return &s
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// ParseDateTime accepts ISO datetimes with or without seconds, fractional
// seconds or a zone offset. Zone-less values are taken as UTC.
func ParseDateTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		DateTimeLayout + ".999999999",
		DateTimeLayout,
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		DateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", value)
}

func displayID(prefix string, id uint) string {
	return fmt.Sprintf("%s-%03d", prefix, id)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
