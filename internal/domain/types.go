package domain

import "time"

// Priority is the domain priority level. None means no priority was set
// and is never displayed.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// String returns the display name for a priority. None renders empty.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return ""
	}
}

// ParsePriority maps a display name back to a Priority. An empty string
// or "none" is PriorityNone; anything else is unrecognized.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "", "none":
		return PriorityNone, true
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	}
	return PriorityNone, false
}

// External priority ordinals used by the store. The mapping is total in
// both directions: unknown ordinals collapse into the nearest level.
const (
	ordinalNone   = 0
	ordinalHigh   = 1
	ordinalMedium = 5
	ordinalLow    = 9
)

// Ordinal returns the store's ordinal encoding of p.
func (p Priority) Ordinal() int {
	switch p {
	case PriorityLow:
		return ordinalLow
	case PriorityMedium:
		return ordinalMedium
	case PriorityHigh:
		return ordinalHigh
	default:
		return ordinalNone
	}
}

// PriorityFromOrdinal maps a store ordinal to the domain priority.
func PriorityFromOrdinal(n int) Priority {
	switch {
	case n <= ordinalNone:
		return PriorityNone
	case n <= 4:
		return PriorityHigh
	case n <= ordinalMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// AlarmKind distinguishes time-based from location-based alarms.
type AlarmKind int

const (
	AlarmTime AlarmKind = iota
	AlarmLocation
)

// Alarm is either a time-based or a location-based alarm. FireDate is
// meaningful for time alarms, Location for location alarms.
type Alarm struct {
	Kind     AlarmKind
	FireDate time.Time
	Location string
}

// Frequency is the recurrence frequency.
type Frequency int

const (
	FreqNone Frequency = iota
	FreqDaily
	FreqWeekly
	FreqMonthly
	FreqYearly
)

// Recurrence describes a repeat rule. Interval is 1 for "every", 2 for
// "every other", and so on. Days is only meaningful for weekly rules.
type Recurrence struct {
	Frequency Frequency
	Interval  int
	Days      []time.Weekday
}

// List is a titled reminders collection.
type List struct {
	ID    string
	Name  string
	Color string
}

// Reminder is a single item as read from the primary store. A due date
// with AllDay set is a calendar-day due date; otherwise the time
// component is meaningful. The identifier is stable for the lifetime of
// the record but callers must tolerate its absence.
type Reminder struct {
	ID               string
	List             string
	Title            string
	Notes            string
	Completed        bool
	CompletionDate   *time.Time
	Priority         Priority
	DueDate          *time.Time
	AllDay           bool
	CreationDate     time.Time
	ModificationDate time.Time
	Alarms           []Alarm
	Recurrence       *Recurrence
}

// RemindAlarm returns the canonical time-based alarm, if any. The first
// time-based alarm found is authoritative.
func (r *Reminder) RemindAlarm() *Alarm {
	for i := range r.Alarms {
		if r.Alarms[i].Kind == AlarmTime {
			return &r.Alarms[i]
		}
	}
	return nil
}

// SetRemindAlarm replaces all time-based alarms with a single one firing
// at t. Location alarms are left untouched.
func (r *Reminder) SetRemindAlarm(t time.Time) {
	kept := r.Alarms[:0]
	for _, a := range r.Alarms {
		if a.Kind != AlarmTime {
			kept = append(kept, a)
		}
	}
	r.Alarms = append(kept, Alarm{Kind: AlarmTime, FireDate: t})
}

// Enriched is a reminder merged with secondary-source attributes for the
// lifetime of one query. Index is meaningful only when HasIndex is set,
// which happens when no explicit sort was requested; it reflects original
// fetch order and is what the user references in later edit, complete and
// delete calls.
type Enriched struct {
	Reminder
	Flagged  bool
	Tags     []string
	Section  string
	Index    int
	HasIndex bool
}
