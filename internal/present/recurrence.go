package present

import (
	"fmt"
	"time"

	"github.com/vab-labo/reminders-cli/internal/domain"
)

// RecurrenceLabel derives the display label for a repeat rule. Weekly
// rules covering exactly Monday through Friday read "weekdays"; weekly
// with interval 2 reads "biweekly"; any interval above 1 otherwise gets
// an "every N" prefix.
func RecurrenceLabel(rec *domain.Recurrence) string {
	if rec == nil {
		return ""
	}

	var label string
	switch rec.Frequency {
	case domain.FreqDaily:
		label = "daily"
	case domain.FreqWeekly:
		switch {
		case isWeekdaySet(rec.Days):
			label = "weekdays"
		case rec.Interval == 2:
			label = "biweekly"
		default:
			label = "weekly"
		}
	case domain.FreqMonthly:
		label = "monthly"
	case domain.FreqYearly:
		label = "yearly"
	default:
		label = "custom"
	}

	if rec.Interval > 1 && label != "biweekly" {
		return fmt.Sprintf("every %d %s", rec.Interval, label)
	}
	return label
}

func isWeekdaySet(days []time.Weekday) bool {
	if len(days) != 5 {
		return false
	}
	seen := map[time.Weekday]bool{}
	for _, d := range days {
		seen[d] = true
	}
	return seen[time.Monday] && seen[time.Tuesday] && seen[time.Wednesday] &&
		seen[time.Thursday] && seen[time.Friday]
}
