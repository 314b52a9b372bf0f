package degiro

import (
	"fmt"
	"time"
)

// DateFormat is the broker's pervasive DD-MM-YYYY date format, used as the
// join key across all reports and generated artifacts.
const DateFormat = "02-01-2006"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in the broker's DD-MM-YYYY format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Format returns a textual representation of the date value formatted
// according to the layout, see [time.Format].
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// IsWeekday reports whether d falls on Monday through Friday.
func (d Date) IsWeekday() bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Unix returns the date as a Unix timestamp at midnight UTC.
func (d Date) Unix() int64 { return d.time().Unix() }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Yesterday returns the day before today, the most recent day a position
// report can exist for.
func Yesterday() Date { return Today().Add(-1) }

// dateOfUnix returns the UTC calendar day containing the Unix timestamp.
func dateOfUnix(sec int64) Date {
	return NewDate(time.Unix(sec, 0).UTC().Date())
}

// ParseDate parses a DD-MM-YYYY date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

// LastOfMonth returns the last day of the month containing d.
//
// Jumping to day 28 and adding 4 days always lands in the next month whatever
// the month length, leap years included; stepping back by that day-of-month
// lands on the last day of d's month.
func (d Date) LastOfMonth() Date {
	next := NewDate(d.y, d.m, 28).Add(4)
	return next.Add(-next.Day())
}

// FirstOfNextMonth returns the first day of the month after d's.
func (d Date) FirstOfNextMonth() Date { return d.LastOfMonth().Add(1) }

// SameMonth reports whether two dates fall in the same calendar month.
func (d Date) SameMonth(x Date) bool { return d.y == x.y && d.m == x.m }

// MonthName returns the Dutch month name, as used in the monthly reports.
func (d Date) MonthName() string { return dutchMonths[d.m-1] }

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}
