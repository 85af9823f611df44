package ledger

import (
	"fmt"
	"time"
)

// Filter restricts which records participate in a computation.
type Filter string

const (
	FilterAll   Filter = "all"
	FilterToday Filter = "today"
	FilterWeek  Filter = "week"
	FilterMonth Filter = "month"
)

// ParseFilter maps a wire value onto a Filter. The empty string means all
// time, matching the default view in the UI.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterToday:
		return FilterToday, nil
	case FilterWeek:
		return FilterWeek, nil
	case FilterMonth:
		return FilterMonth, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// InWindow reports whether a record dated at date falls inside the filter
// window relative to now. Windows follow now's local calendar: "today"
// starts at local midnight (inclusive), "week" at the most recent Sunday
// 00:00 (inclusive), and "month" matches the local calendar month and year.
func InWindow(date, now time.Time, f Filter) bool {
	switch f {
	case FilterToday:
		return !date.Before(startOfDay(now))
	case FilterWeek:
		return !date.Before(startOfWeek(now))
	case FilterMonth:
		d := date.In(now.Location())
		return d.Month() == now.Month() && d.Year() == now.Year()
	default:
		return true
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek is the most recent Sunday at 00:00 local time.
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}
