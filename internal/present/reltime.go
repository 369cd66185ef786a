package present

import (
	"fmt"
	"time"
)

// relTime renders an instant relative to now, e.g. "in 3 hours" or
// "2 days ago". It is the reason human output is non-reproducible across
// time; callers inject now so tests can pin it.
func relTime(t, now time.Time) string {
	d := t.Sub(now)
	future := d >= 0
	if !future {
		d = -d
	}

	var n int
	var unit string
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		n, unit = int(d.Minutes()), "minute"
	case d < 24*time.Hour:
		n, unit = int(d.Hours()), "hour"
	case d < 30*24*time.Hour:
		n, unit = int(d.Hours()/24), "day"
	case d < 365*24*time.Hour:
		n, unit = int(d.Hours()/(24*30)), "month"
	default:
		n, unit = int(d.Hours()/(24*365)), "year"
	}
	if n != 1 {
		unit += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// dayLabel renders a calendar day relative to now's calendar day:
// "today", "tomorrow", "yesterday", a day count within a week, and an
// absolute date beyond that.
func dayLabel(t, now time.Time) string {
	days := daysBetween(now, t)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("in %d days", days)
	case days < -1 && days > -7:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// daysBetween counts whole calendar days from a's day to b's day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
