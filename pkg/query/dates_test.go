package query

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekendRange(t *testing.T) {
	// 2026-03-06 is a Friday.
	friday := day(2026, time.March, 6)
	sunday := day(2026, time.March, 8)

	tests := []struct {
		name      string
		anchor    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"Monday rolls forward", day(2026, time.March, 2), friday, sunday},
		{"Wednesday rolls forward", day(2026, time.March, 4), friday, sunday},
		{"Thursday rolls forward", day(2026, time.March, 5), friday, sunday},
		{"Friday is its own weekend", friday, friday, sunday},
		{"Saturday looks back to Friday", day(2026, time.March, 7), friday, sunday},
		{"Sunday looks back to Friday", sunday, friday, sunday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekendRange(tt.anchor)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("WeekendRange(%s) = [%s, %s], want [%s, %s]",
					tt.anchor.Format(dateLayout),
					start.Format(dateLayout), end.Format(dateLayout),
					tt.wantStart.Format(dateLayout), tt.wantEnd.Format(dateLayout))
			}
		})
	}
}

func TestWeekendRangeIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, time.March, 4, 23, 59, 59, 0, time.UTC)
	start, end := WeekendRange(late)
	if start.Hour() != 0 || end.Hour() != 0 {
		t.Errorf("weekend bounds should be day-truncated, got %s and %s", start, end)
	}
}
