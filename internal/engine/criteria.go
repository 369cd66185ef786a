package engine

import (
	"time"

	"github.com/vab-labo/reminders-cli/internal/domain"
)

// CompletionState selects candidates by completion flag. IncompleteOnly
// and CompleteOnly are mutually exclusive by construction: the command
// surface rejects a request asking for both before a Criteria is built.
type CompletionState int

const (
	IncompleteOnly CompletionState = iota
	CompleteOnly
	AllItems
)

// Criteria is the layered filter applied per candidate reminder. Zero
// value matches every incomplete reminder. All set knobs are ANDed; knob
// order never changes the result.
type Criteria struct {
	Completion CompletionState

	// HasDueDate rejects reminders without a due date.
	HasDueDate bool

	// DueOn matches reminders due on that calendar day. With
	// IncludeOverdue, strictly earlier days match as well. Nil leaves the
	// due date unfiltered.
	DueOn          *time.Time
	IncludeOverdue bool

	OnlyFlagged bool

	// Tag requires the exact, case-sensitive tag among the enriched tags.
	// Section requires the enriched section to equal exactly; a reminder
	// with no section never matches a set Section. Empty means unset.
	Tag     string
	Section string
}

// Matches evaluates the conjunction, cheapest checks first.
func (c Criteria) Matches(r *domain.Enriched) bool {
	switch c.Completion {
	case IncompleteOnly:
		if r.Completed {
			return false
		}
	case CompleteOnly:
		if !r.Completed {
			return false
		}
	}

	if c.HasDueDate && r.DueDate == nil {
		return false
	}
	if c.OnlyFlagged && !r.Flagged {
		return false
	}

	if c.DueOn != nil {
		if r.DueDate == nil {
			return false
		}
		due, target := calendarDay(*r.DueDate), calendarDay(*c.DueOn)
		if !due.Equal(target) && !(c.IncludeOverdue && due.Before(target)) {
			return false
		}
	}

	if c.Section != "" && r.Section != c.Section {
		return false
	}

	if c.Tag != "" {
		found := false
		for _, tag := range r.Tags {
			if tag == c.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// calendarDay truncates t to its wall-clock calendar day, so due-date
// comparisons are day-granular regardless of time-of-day or zone offset.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
