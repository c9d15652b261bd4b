// internal/app/system/format/calendar.go
package format

import (
	"math"
	"strconv"
	"time"
)

var (
	monthNames      = [12]string{"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho", "Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}
	shortMonthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
	weekdayNames    = [7]string{"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira", "Sexta-feira", "Sábado"}
	shortWeekdays   = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}
)

// MonthName returns the Portuguese month name for m (January = 1).
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// ShortMonthName returns the three-letter Portuguese month name.
func ShortMonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return shortMonthNames[m-1]
}

// WeekdayName returns the Portuguese weekday name (Sunday = 0).
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayNames[d]
}

// ShortWeekdayName returns the abbreviated Portuguese weekday name.
func ShortWeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return shortWeekdays[d]
}

// MonthYear renders "Mês/Ano" labels used by the collection charts.
func MonthYear(t time.Time) string {
	t = t.In(loc)
	return ShortMonthName(t.Month()) + "/" + strconv.Itoa(t.Year())
}

// DaysBetween returns the absolute number of days between a and b, rounded.
func DaysBetween(a, b time.Time) int {
	days := math.Abs(a.Sub(b).Hours() / 24)
	return int(math.Round(days))
}

// IsToday reports whether t falls on now's calendar day.
func IsToday(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	t, now = t.In(loc), now.In(loc)
	return t.Year() == now.Year() && t.YearDay() == now.YearDay()
}

// IsThisWeek reports whether t lies between Sunday 00:00 and Saturday 00:00
// of now's week, both ends inclusive.
func IsThisWeek(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	today := StartOfDay(now)
	wd := int(today.Weekday())
	start := today.AddDate(0, 0, -wd)
	end := today.AddDate(0, 0, 6-wd)
	return !t.Before(start) && !t.After(end)
}

// IsThisMonth reports whether t falls in now's month.
func IsThisMonth(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	t, now = t.In(loc), now.In(loc)
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// FirstDayOfMonth returns local midnight of the first day of the month.
func FirstDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}

// LastDayOfMonth returns local midnight of the last day of the month.
func LastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}
