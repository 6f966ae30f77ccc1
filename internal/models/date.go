package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and display format for calendar dates ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or zone component.
// It is stored as midnight UTC so two Dates for the same day always compare equal.
type Date struct {
	t time.Time
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// fromTime keeps only the calendar part of t, as seen in t's own location.
func fromTime(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string { return d.t.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string in %s format", DateLayout)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date must be in %s format: %w", DateLayout, err)
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so a Date can be bound as a query argument.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implements sql.Scanner. Postgres DATE columns arrive as time.Time;
// text is accepted too for drivers that return dates as strings.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = fromTime(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	// Some drivers return a full timestamp for DATE columns.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
