package record

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the wire layout of date-format fields.
const DateLayout = "2006-01-02"

// dateTimeLayouts lists the accepted wire layouts of date-time fields.
// Timestamps without a zone are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Date is a calendar date without time of day or zone.
type Date civil.Date

// NewDate returns the normalized date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(civil.DateOf(t))
}

// ParseDate parses a YYYY-MM-DD string. Values carrying a time of day are rejected.
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return Date(d), nil
}

// Civil returns d as a civil.Date.
func (d Date) Civil() civil.Date {
	return civil.Date(d)
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Civil().String()
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return d.Civil().In(loc)
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	return d.Civil().Before(other.Civil())
}

// DaysUntil returns the number of days from d to other, negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return other.Civil().DaysSince(d.Civil())
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateTime is an instant carried by date-time fields. The original wire text
// is kept so that re-encoding reproduces it.
type DateTime struct {
	time.Time
	raw string
}

// NewDateTime wraps t. It encodes as RFC 3339 with nanoseconds.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// ParseDateTime parses an RFC 3339 timestamp, or a zone-less one as UTC.
// Bare dates are rejected.
func ParseDateTime(s string) (DateTime, error) {
	if !strings.Contains(s, "T") {
		return DateTime{}, fmt.Errorf("invalid date-time %q: missing time of day", s)
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{Time: t, raw: s}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date-time %q: expected RFC 3339", s)
}

// String returns the wire text of the timestamp.
func (dt DateTime) String() string {
	if dt.raw != "" {
		return dt.raw
	}
	return dt.Time.Format(time.RFC3339Nano)
}

// MarshalJSON implements json.Marshaler.
func (dt DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (dt *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}
