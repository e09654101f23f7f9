package services

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	openingHour = 9  // 09:00
	closingHour = 17 // 17:00
)

// AppointmentDuration is the blocked slot length for every service.
const AppointmentDuration = 60 * time.Minute

// ResolveZone maps a booking's timezone field to a location. An empty or
// unknown name falls back to the clinic zone so a malformed form value never
// fails a booking.
func ResolveZone(name string, clinic *time.Location) *time.Location {
	if name == "" {
		return clinic
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return clinic
	}
	return loc
}

// ParseAppointment turns the optional date/time form fields into a concrete
// instant in the given zone. It returns timed=false when only a date was
// given (an all-day request) and a zero time when the date is absent
// entirely, meaning "to be scheduled".
func ParseAppointment(date, clock string, loc *time.Location) (at time.Time, timed bool, err error) {
	if date == "" {
		return time.Time{}, false, nil
	}
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if clock == "" {
		return day, false, nil
	}
	t, err := time.ParseInLocation(timeLayout, clock, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), true, nil
}

// OutsideWorkingHours reports whether an appointment instant falls on a
// weekend or outside the Mon-Fri 09:00-17:00 window. Advisory only: the
// booking is still accepted.
func OutsideWorkingHours(at time.Time) bool {
	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return at.Hour() < openingHour || at.Hour() >= closingHour
}

// FormatReceiptDate renders the date a receipt was issued, e.g. "June 10, 2024".
func FormatReceiptDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// FormatAppointmentDate renders the requested slot for humans, e.g.
// "Monday, June 10, 2024 at 10:00 AM". An all-day request omits the clock;
// a zero time means no slot was requested yet.
func FormatAppointmentDate(at time.Time, timed bool) string {
	if at.IsZero() {
		return "To be scheduled"
	}
	if !timed {
		return at.Format("Monday, January 2, 2006")
	}
	return at.Format("Monday, January 2, 2006 at 3:04 PM")
}
