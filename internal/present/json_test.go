package present

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/vab-labo/reminders-cli/internal/domain"
)

func TestRecordOptionalFields(t *testing.T) {
	r := &domain.Enriched{
		Reminder: domain.Reminder{List: "Work", Title: "x"},
		Flagged:  true,
		Tags:     []string{"work", "urgent"},
	}
	rec := Record(r)

	if rec["flagged"] != true {
		t.Fatalf("flagged = %v", rec["flagged"])
	}
	tags, ok := rec["tags"].([]string)
	if !ok || len(tags) != 2 || tags[0] != "work" || tags[1] != "urgent" {
		t.Fatalf("tags = %v", rec["tags"])
	}
	if _, present := rec["section"]; present {
		t.Fatal("nil section must be omitted entirely")
	}
	if _, present := rec["priority"]; present {
		t.Fatal("priority none must be omitted")
	}
	if _, present := rec["due_date"]; present {
		t.Fatal("missing due date must be omitted")
	}
}

func TestRecordDates(t *testing.T) {
	due := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	r := &domain.Enriched{Reminder: domain.Reminder{
		List:         "Home",
		Title:        "x",
		DueDate:      &due,
		CreationDate: created,
	}}
	rec := Record(r)

	if rec["due_date"] != "2026-09-01T15:00:00Z" {
		t.Fatalf("due_date = %v", rec["due_date"])
	}
	if rec["creation_date"] != "2026-08-01T10:00:00Z" {
		t.Fatalf("creation_date = %v", rec["creation_date"])
	}
	if rec["all_day"] != false {
		t.Fatal("all_day accompanies a due date")
	}
}

func TestRecordNotesSplit(t *testing.T) {
	r := &domain.Enriched{Reminder: domain.Reminder{
		List:  "Home",
		Title: "x",
		Notes: domain.EncodeNotes("content here", "https://example.com"),
	}}
	rec := Record(r)
	if rec["notes"] != "content here" || rec["url"] != "https://example.com" {
		t.Fatalf("notes=%v url=%v", rec["notes"], rec["url"])
	}
}

func TestRecordIndexOnlyWhenUnsorted(t *testing.T) {
	with := &domain.Enriched{Reminder: domain.Reminder{Title: "x"}, Index: 3, HasIndex: true}
	if Record(with)["index"] != 3 {
		t.Fatal("index missing")
	}
	without := &domain.Enriched{Reminder: domain.Reminder{Title: "x"}, Index: 3}
	if _, present := Record(without)["index"]; present {
		t.Fatal("sorted output must carry no index")
	}
}

func TestJSONDeterministicKeyOrder(t *testing.T) {
	due := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	items := []domain.Enriched{{
		Reminder: domain.Reminder{List: "Work", Title: "x", DueDate: &due},
		Flagged:  true,
		Tags:     []string{"a"},
	}}

	first, err := JSON(items)
	if err != nil {
		t.Fatal(err)
	}
	second, err := JSON(items)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("output must be byte-identical across runs")
	}

	// Keys inside a record appear lexicographically.
	keys := []string{`"all_day"`, `"completed"`, `"due_date"`, `"flagged"`, `"list"`, `"tags"`, `"title"`}
	last := -1
	for _, k := range keys {
		i := strings.Index(first, k)
		if i < 0 {
			t.Fatalf("key %s missing from %s", k, first)
		}
		if i < last {
			t.Fatalf("key %s out of lexicographic position", k)
		}
		last = i
	}

	// And the document round-trips as valid JSON.
	var parsed []map[string]any
	if err := json.Unmarshal([]byte(first), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
}
