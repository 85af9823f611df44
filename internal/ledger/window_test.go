package ledger

import (
	"testing"
	"time"
)

func TestParseFilter(t *testing.T) {
	for _, s := range []string{"", "all", "today", "week", "month"} {
		if _, err := ParseFilter(s); err != nil {
			t.Errorf("ParseFilter(%q) returned error: %v", s, err)
		}
	}
	if _, err := ParseFilter("fortnight"); err == nil {
		t.Error("ParseFilter(\"fortnight\") should error")
	}
}

func TestInWindow(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)
	// Wednesday, March 12 2025, 15:30 local time.
	now := time.Date(2025, time.March, 12, 15, 30, 0, 0, loc)

	tests := []struct {
		name   string
		date   time.Time
		filter Filter
		want   bool
	}{
		{"all includes everything", time.Date(2020, time.January, 1, 0, 0, 0, 0, loc), FilterAll, true},
		{"today includes local midnight", time.Date(2025, time.March, 12, 0, 0, 0, 0, loc), FilterToday, true},
		{"today includes later same day", time.Date(2025, time.March, 12, 12, 0, 0, 0, loc), FilterToday, true},
		{"today excludes 23:59:59 yesterday", time.Date(2025, time.March, 11, 23, 59, 59, 0, loc), FilterToday, false},
		{"week includes Sunday midnight", time.Date(2025, time.March, 9, 0, 0, 0, 0, loc), FilterWeek, true},
		{"week includes midweek", time.Date(2025, time.March, 11, 9, 0, 0, 0, loc), FilterWeek, true},
		{"week excludes Saturday night before", time.Date(2025, time.March, 8, 23, 59, 0, 0, loc), FilterWeek, false},
		{"month includes first of month", time.Date(2025, time.March, 1, 0, 0, 0, 0, loc), FilterMonth, true},
		{"month excludes previous month", time.Date(2025, time.February, 28, 12, 0, 0, 0, loc), FilterMonth, false},
		{"month excludes same month last year", time.Date(2024, time.March, 12, 12, 0, 0, 0, loc), FilterMonth, false},
		{"month includes future day of same month", time.Date(2025, time.March, 30, 12, 0, 0, 0, loc), FilterMonth, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InWindow(tt.date, now, tt.filter); got != tt.want {
				t.Errorf("InWindow(%v, now, %q) = %v, want %v", tt.date, tt.filter, got, tt.want)
			}
		})
	}
}
