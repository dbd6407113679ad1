package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (start_date, end_date).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string. An empty string yields nil (unset).
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
	}
	return &t, nil
}

// FormatDate renders a date for JSON; nil stays nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
