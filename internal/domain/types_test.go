package domain

import (
	"testing"
	"time"
)

func TestPriorityOrdinalRoundTrip(t *testing.T) {
	for _, p := range []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh} {
		if got := PriorityFromOrdinal(p.Ordinal()); got != p {
			t.Fatalf("priority %v -> ordinal %d -> %v", p, p.Ordinal(), got)
		}
	}
}

func TestPriorityFromOrdinalTotal(t *testing.T) {
	// Every ordinal the store could hand back maps to some level.
	cases := map[int]Priority{
		0: PriorityNone,
		1: PriorityHigh,
		2: PriorityHigh,
		4: PriorityHigh,
		5: PriorityMedium,
		6: PriorityLow,
		9: PriorityLow,
	}
	for n, want := range cases {
		if got := PriorityFromOrdinal(n); got != want {
			t.Fatalf("ordinal %d: got %v, want %v", n, got, want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	if p, ok := ParsePriority("high"); !ok || p != PriorityHigh {
		t.Fatalf("parse high: %v %v", p, ok)
	}
	if p, ok := ParsePriority(""); !ok || p != PriorityNone {
		t.Fatalf("parse empty: %v %v", p, ok)
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Fatal("expected urgent to be rejected")
	}
}

func TestSetRemindAlarmSupersedes(t *testing.T) {
	loc := Alarm{Kind: AlarmLocation, Location: "home"}
	r := Reminder{Alarms: []Alarm{
		{Kind: AlarmTime, FireDate: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)},
		loc,
		{Kind: AlarmTime, FireDate: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)},
	}}

	fire := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)
	r.SetRemindAlarm(fire)

	var timeAlarms, locAlarms int
	for _, a := range r.Alarms {
		switch a.Kind {
		case AlarmTime:
			timeAlarms++
			if !a.FireDate.Equal(fire) {
				t.Fatalf("unexpected fire date %v", a.FireDate)
			}
		case AlarmLocation:
			locAlarms++
		}
	}
	if timeAlarms != 1 {
		t.Fatalf("expected exactly one time alarm, got %d", timeAlarms)
	}
	if locAlarms != 1 {
		t.Fatal("location alarm should be untouched")
	}

	if got := r.RemindAlarm(); got == nil || !got.FireDate.Equal(fire) {
		t.Fatalf("RemindAlarm = %+v", got)
	}
}
