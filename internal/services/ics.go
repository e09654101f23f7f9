package services

import (
	"strings"
	"time"
)

// CalendarEvent is a typed calendar invite. It is serialized by Encode and
// tested independently of the mail path that carries it.
type CalendarEvent struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

const (
	icsDateTimeLayout = "20060102T150405"
	icsDateLayout     = "20060102"
)

// escapeText escapes an ICS text value per RFC 5545 §3.3.11.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// Encode renders the event as a VCALENDAR text block. Timed events carry
// their zone via TZID; all-day events use the VALUE=DATE form with an
// exclusive end on the following day.
func (e CalendarEvent) Encode() string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//Bensefia Dental Clinic//Booking//EN")
	line("METHOD:REQUEST")
	line("BEGIN:VEVENT")
	line("UID:" + e.UID)
	line("DTSTAMP:" + time.Now().UTC().Format(icsDateTimeLayout) + "Z")
	if e.AllDay {
		line("DTSTART;VALUE=DATE:" + e.Start.Format(icsDateLayout))
		line("DTEND;VALUE=DATE:" + e.Start.AddDate(0, 0, 1).Format(icsDateLayout))
	} else {
		tzid := e.Start.Location().String()
		line("DTSTART;TZID=" + tzid + ":" + e.Start.Format(icsDateTimeLayout))
		line("DTEND;TZID=" + tzid + ":" + e.End.Format(icsDateTimeLayout))
	}
	line("SUMMARY:" + escapeText(e.Summary))
	if e.Description != "" {
		line("DESCRIPTION:" + escapeText(e.Description))
	}
	if e.Location != "" {
		line("LOCATION:" + escapeText(e.Location))
	}
	line("END:VEVENT")
	line("END:VCALENDAR")
	return b.String()
}
