package timeutil

import (
	"testing"
	"time"
)

func TestStartOfWeekIsMonday(t *testing.T) {
	tests := []struct {
		name string
		day  string
		want string
	}{
		{"monday maps to itself", "2025-03-17", "2025-03-17"},
		{"wednesday maps back", "2025-03-19", "2025-03-17"},
		{"saturday maps back", "2025-03-22", "2025-03-17"},
		{"sunday maps to prior monday", "2025-03-23", "2025-03-17"},
		{"next monday starts new week", "2025-03-24", "2025-03-24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ParseDay(tt.day)
			if err != nil {
				t.Fatalf("ParseDay(%q): %v", tt.day, err)
			}
			got := FormatDay(StartOfWeek(day))
			if got != tt.want {
				t.Errorf("StartOfWeek(%s) = %s, want %s", tt.day, got, tt.want)
			}
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	day, _ := ParseDay("2025-03-19")
	got := FormatDay(StartOfMonth(day))
	if got != "2025-03-01" {
		t.Errorf("StartOfMonth = %s, want 2025-03-01", got)
	}
}

func TestWeekDaysMondayThroughSunday(t *testing.T) {
	day, _ := ParseDay("2025-03-19")
	days := WeekDays(day)

	if len(days) != 7 {
		t.Fatalf("WeekDays returned %d entries, want 7", len(days))
	}
	if FormatDay(days[0]) != "2025-03-17" {
		t.Errorf("first day = %s, want 2025-03-17", FormatDay(days[0]))
	}
	if FormatDay(days[6]) != "2025-03-23" {
		t.Errorf("last day = %s, want 2025-03-23", FormatDay(days[6]))
	}
	if days[0].Weekday() != time.Monday {
		t.Errorf("first day is %s, want Monday", days[0].Weekday())
	}
	if days[6].Weekday() != time.Sunday {
		t.Errorf("last day is %s, want Sunday", days[6].Weekday())
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "19-03-2025", "2025/03/19", "not a date"} {
		if _, err := ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q) succeeded, want error", bad)
		}
	}
}

func TestStartOfDayKeepsCalendarDay(t *testing.T) {
	ts := time.Date(2025, 3, 19, 23, 45, 0, 0, IST)
	got := StartOfDay(ts)
	if FormatDay(got) != "2025-03-19" {
		t.Errorf("StartOfDay = %s, want 2025-03-19", FormatDay(got))
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("StartOfDay not at midnight: %v", got)
	}
}
