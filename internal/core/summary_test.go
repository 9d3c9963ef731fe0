package core

import (
	"testing"
	"time"
)

func rec(date Date, category string, cents int64) Record {
	return Record{Date: date, Category: category, Amount: Money{Cents: cents}}
}

func TestSummarizeEmpty(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	for _, w := range []Window{WindowAll, WindowWeek, WindowMonth} {
		s := Summarize(nil, w, now)
		if s.Total.Cents != 0 {
			t.Fatalf("window %s: expected zero total, got %d", w, s.Total.Cents)
		}
		if len(s.ByCategory) != 0 || len(s.ByDay) != 0 {
			t.Fatalf("window %s: expected empty maps", w)
		}
		if s.ByCategory == nil || s.ByDay == nil {
			t.Fatalf("window %s: maps must be initialized, not nil", w)
		}
	}
}

func TestSummarizeAllTime(t *testing.T) {
	records := []Record{
		{Date: NewDate(2024, 3, 1), Category: "Food", Amount: Money{Cents: 1250}, Description: "lunch"},
		{Date: NewDate(2024, 3, 1), Category: "Transport", Amount: Money{Cents: 300}},
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s := Summarize(records, WindowAll, now)
	if s.Total.Cents != 1550 {
		t.Fatalf("total = %d, want 1550", s.Total.Cents)
	}
	if got := s.ByCategory["Food"].Cents; got != 1250 {
		t.Fatalf("ByCategory[Food] = %d, want 1250", got)
	}
	if got := s.ByCategory["Transport"].Cents; got != 300 {
		t.Fatalf("ByCategory[Transport] = %d, want 300", got)
	}
	if got := s.ByDay[NewDate(2024, 3, 1)].Cents; got != 1550 {
		t.Fatalf("ByDay[2024-03-01] = %d, want 1550", got)
	}

	// Idempotent and order-independent
	again := Summarize([]Record{records[1], records[0]}, WindowAll, now)
	if again.Total != s.Total || len(again.ByCategory) != len(s.ByCategory) {
		t.Fatalf("summarize is not order-independent")
	}
}

func TestSummarizeCurrentWeekExcludesOlderRecords(t *testing.T) {
	// now is Friday 2024-03-15; the week runs Mon 2024-03-11 .. Sun 2024-03-17
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	records := []Record{
		rec(NewDate(2024, 3, 15), "Food", 500),
		rec(NewDate(2024, 3, 8), "Food", 700), // one week earlier
	}
	s := Summarize(records, WindowWeek, now)
	if s.Total.Cents != 500 {
		t.Fatalf("total = %d, want 500 (older record excluded)", s.Total.Cents)
	}
	if _, ok := s.ByDay[NewDate(2024, 3, 8)]; ok {
		t.Fatalf("ByDay must not contain the excluded date")
	}
}

func TestWindowWeekBounds(t *testing.T) {
	cases := []struct {
		now   time.Time
		start Date
		end   Date
	}{
		// Friday
		{time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), NewDate(2024, 3, 11), NewDate(2024, 3, 18)},
		// Monday maps to itself
		{time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), NewDate(2024, 3, 11), NewDate(2024, 3, 18)},
		// Sunday still belongs to the week opened the previous Monday
		{time.Date(2024, 3, 17, 8, 0, 0, 0, time.UTC), NewDate(2024, 3, 11), NewDate(2024, 3, 18)},
		// Year boundary: Thu 2026-01-01 is in the week of Mon 2025-12-29
		{time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), NewDate(2025, 12, 29), NewDate(2026, 1, 5)},
	}
	for _, tc := range cases {
		start, end, bounded := WindowWeek.Bounds(tc.now)
		if !bounded {
			t.Fatalf("week window must be bounded")
		}
		if start != tc.start || end != tc.end {
			t.Fatalf("Bounds(%s) = [%s, %s), want [%s, %s)", tc.now, start, end, tc.start, tc.end)
		}
	}
}

func TestWindowMonthBounds(t *testing.T) {
	start, end, bounded := WindowMonth.Bounds(time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC))
	if !bounded {
		t.Fatalf("month window must be bounded")
	}
	if start != NewDate(2024, 12, 1) || end != NewDate(2025, 1, 1) {
		t.Fatalf("Bounds = [%s, %s), want [2024-12-01, 2025-01-01)", start, end)
	}
}

func TestSummarizeCurrentMonth(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	records := []Record{
		rec(NewDate(2024, 3, 1), "Bills", 2000),
		rec(NewDate(2024, 3, 31), "Bills", 1000),
		rec(NewDate(2024, 2, 29), "Bills", 9999), // previous month
		rec(NewDate(2024, 4, 1), "Bills", 9999),  // next month
	}
	s := Summarize(records, WindowMonth, now)
	if s.Total.Cents != 3000 {
		t.Fatalf("total = %d, want 3000", s.Total.Cents)
	}
	if len(s.ByDay) != 2 {
		t.Fatalf("ByDay size = %d, want 2", len(s.ByDay))
	}
}

func TestWindowIsValid(t *testing.T) {
	for _, w := range []Window{WindowAll, WindowWeek, WindowMonth} {
		if !w.IsValid() {
			t.Fatalf("%s should be valid", w)
		}
	}
	if Window("fortnight").IsValid() {
		t.Fatalf("unknown window should be invalid")
	}
}
