package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sriram-PR/index-now/pkg/parse"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

type rangeKind int

const (
	kindUnset rangeKind = iota
	kindRange
	kindBetween
	kindToday
	kindYesterday
	kindDay
	kindDaysAgo
	kindLaterThan
	kindLaterThanOrEqual
	kindEarlierThan
	kindEarlierThanOrEqual
)

// DateRange is a predicate over calendar dates, built with one of the constructors below
// All comparisons ignore the time of day. The zero value matches every date
type DateRange struct {
	kind  rangeKind
	start time.Time
	end   time.Time
	days  int
}

// Range matches start <= d <= end
func Range(start, end time.Time) DateRange {
	return DateRange{kind: kindRange, start: calendarDay(start), end: calendarDay(end)}
}

// Between matches start < d < end
func Between(start, end time.Time) DateRange {
	return DateRange{kind: kindBetween, start: calendarDay(start), end: calendarDay(end)}
}

// Today matches the current day, evaluated when the predicate runs
func Today() DateRange {
	return DateRange{kind: kindToday}
}

// Yesterday matches the day before the current day
func Yesterday() DateRange {
	return DateRange{kind: kindYesterday}
}

// Day matches exactly one calendar day
func Day(day time.Time) DateRange {
	return DateRange{kind: kindDay, start: calendarDay(day)}
}

// DaysAgo matches today-n <= d <= today
func DaysAgo(n int) DateRange {
	return DateRange{kind: kindDaysAgo, days: n}
}

// LaterThan matches d > day
func LaterThan(day time.Time) DateRange {
	return DateRange{kind: kindLaterThan, start: calendarDay(day)}
}

// LaterThanOrEqual matches d >= day
func LaterThanOrEqual(day time.Time) DateRange {
	return DateRange{kind: kindLaterThanOrEqual, start: calendarDay(day)}
}

// EarlierThan matches d < day
func EarlierThan(day time.Time) DateRange {
	return DateRange{kind: kindEarlierThan, start: calendarDay(day)}
}

// EarlierThanOrEqual matches d <= day
func EarlierThanOrEqual(day time.Time) DateRange {
	return DateRange{kind: kindEarlierThanOrEqual, start: calendarDay(day)}
}

// IsZero reports whether r was not built by a constructor
func (r DateRange) IsZero() bool {
	return r.kind == kindUnset
}

// IsWithinRange checks date against the range, using the local current day for relative variants
func (r DateRange) IsWithinRange(date time.Time) bool {
	return r.IsWithinRangeOn(date, time.Now())
}

// IsWithinRangeOn checks date against the range with an explicit reference day for Today, Yesterday and DaysAgo
func (r DateRange) IsWithinRangeOn(date, today time.Time) bool {
	d := calendarDay(date)
	now := calendarDay(today)

	switch r.kind {
	case kindRange:
		return !d.Before(r.start) && !d.After(r.end)
	case kindBetween:
		return d.After(r.start) && d.Before(r.end)
	case kindToday:
		return d.Equal(now)
	case kindYesterday:
		return d.Equal(now.AddDate(0, 0, -1))
	case kindDay:
		return d.Equal(r.start)
	case kindDaysAgo:
		return !d.Before(now.AddDate(0, 0, -r.days)) && !d.After(now)
	case kindLaterThan:
		return d.After(r.start)
	case kindLaterThanOrEqual:
		return !d.Before(r.start)
	case kindEarlierThan:
		return d.Before(r.start)
	case kindEarlierThanOrEqual:
		return !d.After(r.start)
	default:
		return true
	}
}

// Equal reports whether both ranges are the same variant with the same defining dates or day count
func (r DateRange) Equal(other DateRange) bool {
	if r.kind != other.kind {
		return false
	}
	switch r.kind {
	case kindRange, kindBetween:
		return r.start.Equal(other.start) && r.end.Equal(other.end)
	case kindDay, kindLaterThan, kindLaterThanOrEqual, kindEarlierThan, kindEarlierThanOrEqual:
		return r.start.Equal(other.start)
	case kindDaysAgo:
		return r.days == other.days
	default:
		return true
	}
}

// String renders the range in the textual form accepted by ParseDateRange
func (r DateRange) String() string {
	switch r.kind {
	case kindRange:
		return "range:" + formatDay(r.start) + ".." + formatDay(r.end)
	case kindBetween:
		return "between:" + formatDay(r.start) + ".." + formatDay(r.end)
	case kindToday:
		return "today"
	case kindYesterday:
		return "yesterday"
	case kindDay:
		return "day:" + formatDay(r.start)
	case kindDaysAgo:
		return "days-ago:" + strconv.Itoa(r.days)
	case kindLaterThan:
		return "after:" + formatDay(r.start)
	case kindLaterThanOrEqual:
		return "after-or-on:" + formatDay(r.start)
	case kindEarlierThan:
		return "before:" + formatDay(r.start)
	case kindEarlierThanOrEqual:
		return "before-or-on:" + formatDay(r.start)
	default:
		return "unset"
	}
}

// ParseDateRange reads the textual form used in config files and CLI flags, e.g.
// "today", "days-ago:7", "after:2025-01-01" or "range:2025-01-01..2025-01-31"
func ParseDateRange(text string) (DateRange, error) {
	text = strings.TrimSpace(text)
	name, arg, hasArg := strings.Cut(text, ":")
	name = strings.ToLower(strings.TrimSpace(name))
	arg = strings.TrimSpace(arg)

	switch name {
	case "today", "yesterday":
		if hasArg {
			return DateRange{}, fmt.Errorf("%w: date range '%s' takes no argument", utils.ErrConfigValidation, name)
		}
		if name == "today" {
			return Today(), nil
		}
		return Yesterday(), nil

	case "days-ago":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return DateRange{}, fmt.Errorf("%w: days-ago needs a non-negative number of days, got '%s'", utils.ErrConfigValidation, arg)
		}
		return DaysAgo(n), nil

	case "range", "between":
		from, to, ok := strings.Cut(arg, "..")
		if !ok {
			return DateRange{}, fmt.Errorf("%w: %s needs START..END, got '%s'", utils.ErrConfigValidation, name, arg)
		}
		start, err := parse.ParseDate(from)
		if err != nil {
			return DateRange{}, utils.WrapErrorf(err, "date range '%s'", text)
		}
		end, err := parse.ParseDate(to)
		if err != nil {
			return DateRange{}, utils.WrapErrorf(err, "date range '%s'", text)
		}
		if name == "range" {
			return Range(start, end), nil
		}
		return Between(start, end), nil

	case "day", "after", "after-or-on", "before", "before-or-on":
		day, err := parse.ParseDate(arg)
		if err != nil {
			return DateRange{}, utils.WrapErrorf(err, "date range '%s'", text)
		}
		switch name {
		case "day":
			return Day(day), nil
		case "after":
			return LaterThan(day), nil
		case "after-or-on":
			return LaterThanOrEqual(day), nil
		case "before":
			return EarlierThan(day), nil
		default:
			return EarlierThanOrEqual(day), nil
		}
	}

	return DateRange{}, fmt.Errorf("%w: unknown date range '%s'", utils.ErrConfigValidation, text)
}

// calendarDay drops the time of day, keeping the date as written in t's own location
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatDay(t time.Time) string {
	return t.Format(time.DateOnly)
}
