// internal/app/system/format/date.go
package format

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // America/Sao_Paulo must resolve in minimal containers
)

const (
	displayLayout = "02/01/2006"
	inputLayout   = "2006-01-02"
)

var loc = defaultLocation()

func defaultLocation() *time.Location {
	l, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return l
}

// SetLocation changes the zone used to interpret calendar dates.
// Call once at startup; nil is ignored.
func SetLocation(l *time.Location) {
	if l != nil {
		loc = l
	}
}

// Location returns the zone calendar dates are interpreted in.
func Location() *time.Location { return loc }

// Date renders a date-like value as DD/MM/YYYY.
//
// Accepted inputs are time.Time, *time.Time and strings. A string that splits
// on "-" into exactly three parts is treated as YYYY-MM-DD (the day keeps only
// its first two characters, so ISO timestamps work too); any other non-empty
// string is returned unchanged. Empty, zero or unsupported values yield "".
func Date(v any) string {
	switch d := v.(type) {
	case string:
		if d == "" {
			return ""
		}
		parts := strings.Split(d, "-")
		if len(parts) == 3 {
			day := parts[2]
			if len(day) > 2 {
				day = day[:2]
			}
			return day + "/" + parts[1] + "/" + parts[0]
		}
		return d
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.In(loc).Format(displayLayout)
	case *time.Time:
		if d == nil || d.IsZero() {
			return ""
		}
		return d.In(loc).Format(displayLayout)
	}
	return ""
}

// DateForInput renders a date-like value as YYYY-MM-DD for <input type="date">.
//
// A DD/MM/YYYY string is reordered; other strings containing "/" are returned
// unchanged. A YYYY-MM-DD string is already in input form and passes through.
func DateForInput(v any) string {
	switch d := v.(type) {
	case string:
		if d == "" {
			return ""
		}
		if strings.Contains(d, "/") {
			parts := strings.Split(d, "/")
			if len(parts) == 3 {
				return parts[2] + "-" + parts[1] + "-" + parts[0]
			}
			return d
		}
		if _, err := time.Parse(inputLayout, d); err == nil {
			return d
		}
		return ""
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.In(loc).Format(inputLayout)
	case *time.Time:
		if d == nil || d.IsZero() {
			return ""
		}
		return d.In(loc).Format(inputLayout)
	}
	return ""
}

// Time returns an HH:MM string unchanged.
func Time(s string) string {
	return s
}

// FilenameDate renders t as YYYY-MM-DD for export file names.
func FilenameDate(t time.Time) string {
	return t.In(loc).Format(inputLayout)
}

// ParseDate reads DD/MM/YYYY or YYYY-MM-DD as local midnight, falling back
// to RFC 3339. Out-of-range days roll over the way time.Date does.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) == 3 {
			return civil(parts[2], parts[1], parts[0])
		}
	}
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) == 3 {
			if t, ok := civil(parts[0], parts[1], parts[2]); ok {
				return t, true
			}
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func civil(ys, ms, ds string) (time.Time, bool) {
	y, err1 := strconv.Atoi(strings.TrimSpace(ys))
	m, err2 := strconv.Atoi(strings.TrimSpace(ms))
	d, err3 := strconv.Atoi(strings.TrimSpace(ds))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc), true
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable second of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Second)
}
