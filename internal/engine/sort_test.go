package engine

import (
	"testing"
	"time"

	"github.com/vab-labo/reminders-cli/internal/domain"
)

func mkItems(titles []string, dues []*time.Time) []domain.Enriched {
	items := make([]domain.Enriched, len(titles))
	for i := range titles {
		items[i] = domain.Enriched{Reminder: domain.Reminder{Title: titles[i], DueDate: dues[i]}}
	}
	return items
}

func titles(items []domain.Enriched) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortDueDateAscending(t *testing.T) {
	d1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	items := mkItems([]string{"late", "early"}, []*time.Time{&d2, &d1})

	Sort(items, SortDueDate, Ascending)
	if got := titles(items); !equal(got, []string{"early", "late"}) {
		t.Fatalf("got %v", got)
	}
}

func TestSortDueDateDescending(t *testing.T) {
	d1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	items := mkItems([]string{"early", "late"}, []*time.Time{&d1, &d2})

	Sort(items, SortDueDate, Descending)
	if got := titles(items); !equal(got, []string{"late", "early"}) {
		t.Fatalf("got %v", got)
	}
}

func TestSortMissingDatesAfterPresent(t *testing.T) {
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, order := range []Order{Ascending, Descending} {
		items := mkItems([]string{"nodate", "dated"}, []*time.Time{nil, &d})
		Sort(items, SortDueDate, order)
		if got := titles(items); !equal(got, []string{"dated", "nodate"}) {
			t.Fatalf("order %v: got %v", order, got)
		}
	}
}

func TestSortStable(t *testing.T) {
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := mkItems([]string{"a", "b", "c"}, []*time.Time{&d, &d, &d})

	Sort(items, SortDueDate, Ascending)
	if got := titles(items); !equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("equal keys must keep fetch order, got %v", got)
	}

	// Missing values tie too, and must also keep their relative order.
	items = mkItems([]string{"x", "y"}, []*time.Time{nil, nil})
	Sort(items, SortDueDate, Descending)
	if got := titles(items); !equal(got, []string{"x", "y"}) {
		t.Fatalf("tied missing values reordered: %v", got)
	}
}

func TestSortNoneKeepsOrder(t *testing.T) {
	d1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := mkItems([]string{"b", "a"}, []*time.Time{&d1, &d2})

	Sort(items, SortNone, Ascending)
	if got := titles(items); !equal(got, []string{"b", "a"}) {
		t.Fatalf("SortNone must not reorder, got %v", got)
	}
}

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"":                  SortNone,
		"none":              SortNone,
		"due-date":          SortDueDate,
		"creation-date":     SortCreationDate,
		"modification-date": SortModificationDate,
		"completion-date":   SortCompletionDate,
	}
	for in, want := range cases {
		got, ok := ParseSortKey(in)
		if !ok || got != want {
			t.Errorf("ParseSortKey(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseSortKey("priority"); ok {
		t.Error("unknown sort key must be rejected")
	}
}
