package core

import "time"

// Window selects the time range a summary covers. Bounded windows are
// anchored to a caller-supplied "now" so summaries stay reproducible.
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"  // Monday-Sunday containing now
	WindowMonth Window = "month" // calendar month containing now
)

// IsValid returns true for a recognized window.
func (w Window) IsValid() bool {
	switch w {
	case WindowAll, WindowWeek, WindowMonth:
		return true
	default:
		return false
	}
}

// Bounds returns the half-open interval [start, end) covered by the
// window around now. bounded is false for WindowAll, in which case
// start and end are zero.
func (w Window) Bounds(now time.Time) (start, end Date, bounded bool) {
	today := DateOf(now)
	switch w {
	case WindowWeek:
		// time.Weekday puts Sunday at 0; shift so Monday opens the week
		offset := int(today.Weekday()) - 1
		if offset < 0 {
			offset = 6
		}
		start = Date{Time: today.AddDate(0, 0, -offset)}
		end = Date{Time: start.AddDate(0, 0, 7)}
		return start, end, true
	case WindowMonth:
		start = NewDate(today.Year(), today.Month(), 1)
		end = Date{Time: start.AddDate(0, 1, 0)}
		return start, end, true
	default:
		return Date{}, Date{}, false
	}
}

// Summary is the aggregated result of a window query.
type Summary struct {
	Window     Window
	Total      Money
	ByCategory map[string]Money
	ByDay      map[Date]Money
}

// Summarize filters records to the window anchored at now and sums
// amounts in total and per category and day. It is a pure function:
// no side effects, and the result does not depend on input order.
// An empty filtered set yields a zero total and empty maps.
func Summarize(records []Record, w Window, now time.Time) Summary {
	s := Summary{
		Window:     w,
		ByCategory: make(map[string]Money),
		ByDay:      make(map[Date]Money),
	}
	start, end, bounded := w.Bounds(now)
	for _, r := range records {
		if bounded && (r.Date.Before(start.Time) || !r.Date.Before(end.Time)) {
			continue
		}
		s.Total.Cents += r.Amount.Cents
		c := s.ByCategory[r.Category]
		c.Cents += r.Amount.Cents
		s.ByCategory[r.Category] = c
		d := s.ByDay[r.Date]
		d.Cents += r.Amount.Cents
		s.ByDay[r.Date] = d
	}
	return s
}
