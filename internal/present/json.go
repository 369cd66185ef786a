package present

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vab-labo/reminders-cli/internal/domain"
)

// JSON renders items as an indented JSON array, one self-describing
// record per item. Records are maps, so encoding/json emits their keys
// in lexicographic order and the output is diff-stable across runs.
// Optional fields are present only when set; dates are RFC3339 with
// zone offset.
func JSON(items []domain.Enriched) (string, error) {
	records := make([]map[string]any, len(items))
	for i := range items {
		records[i] = Record(&items[i])
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal reminders: %w", err)
	}
	return string(data) + "\n", nil
}

// Record builds the serialized shape of one enriched reminder.
func Record(r *domain.Enriched) map[string]any {
	rec := map[string]any{
		"completed": r.Completed,
		"list":      r.List,
		"title":     r.Title,
	}

	if r.ID != "" {
		rec["external_id"] = r.ID
	}
	if r.HasIndex {
		rec["index"] = r.Index
	}
	if !r.CreationDate.IsZero() {
		rec["creation_date"] = r.CreationDate.Format(time.RFC3339)
	}
	if !r.ModificationDate.IsZero() {
		rec["modification_date"] = r.ModificationDate.Format(time.RFC3339)
	}
	if r.CompletionDate != nil {
		rec["completion_date"] = r.CompletionDate.Format(time.RFC3339)
	}
	if r.DueDate != nil {
		rec["due_date"] = r.DueDate.Format(time.RFC3339)
		rec["all_day"] = r.AllDay
	}
	if p := r.Priority.String(); p != "" {
		rec["priority"] = p
	}
	if content, url := domain.DecodeNotes(r.Notes); content != "" || url != "" {
		if content != "" {
			rec["notes"] = content
		}
		if url != "" {
			rec["url"] = url
		}
	}
	if r.Flagged {
		rec["flagged"] = true
	}
	if len(r.Tags) > 0 {
		rec["tags"] = r.Tags
	}
	if r.Section != "" {
		rec["section"] = r.Section
	}
	if label := RecurrenceLabel(r.Recurrence); label != "" {
		rec["repeats"] = label
	}
	if alarm := r.RemindAlarm(); alarm != nil {
		rec["remind_date"] = alarm.FireDate.Format(time.RFC3339)
	}
	return rec
}
