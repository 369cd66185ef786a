package engine

import (
	"sort"
	"time"

	"github.com/vab-labo/reminders-cli/internal/domain"
)

// SortKey selects the date field to order by. SortNone keeps the fetch
// order, and is the only mode in which positional indices are assigned.
type SortKey int

const (
	SortNone SortKey = iota
	SortDueDate
	SortCreationDate
	SortModificationDate
	SortCompletionDate
)

// Order is the sort direction.
type Order int

const (
	Ascending Order = iota
	Descending
)

// ParseSortKey maps a command-surface name to a SortKey.
func ParseSortKey(s string) (SortKey, bool) {
	switch s {
	case "", "none":
		return SortNone, true
	case "due-date":
		return SortDueDate, true
	case "creation-date":
		return SortCreationDate, true
	case "modification-date":
		return SortModificationDate, true
	case "completion-date":
		return SortCompletionDate, true
	}
	return SortNone, false
}

// ParseOrder maps a direction name to an Order.
func ParseOrder(s string) (Order, bool) {
	switch s {
	case "", "ascending":
		return Ascending, true
	case "descending":
		return Descending, true
	}
	return Ascending, false
}

// Sort orders items in place. The sort is stable: equal keys keep their
// original relative order. A missing date sorts after every present date
// under both directions; the direction only flips comparisons between
// present values.
func Sort(items []domain.Enriched, key SortKey, order Order) {
	if key == SortNone {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := sortValue(&items[i], key), sortValue(&items[j], key)
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		case order == Descending:
			return b.Before(*a)
		default:
			return a.Before(*b)
		}
	})
}

func sortValue(r *domain.Enriched, key SortKey) *time.Time {
	switch key {
	case SortDueDate:
		return r.DueDate
	case SortCreationDate:
		if r.CreationDate.IsZero() {
			return nil
		}
		return &r.CreationDate
	case SortModificationDate:
		if r.ModificationDate.IsZero() {
			return nil
		}
		return &r.ModificationDate
	case SortCompletionDate:
		return r.CompletionDate
	}
	return nil
}
