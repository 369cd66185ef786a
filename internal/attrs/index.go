package attrs

import (
	"database/sql"
	"encoding/json"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// The secondary source is a directory of SQLite partitions. The local
// partition uses an incompatible schema and is excluded by name.
const (
	partitionGlob  = "Data-*.sqlitedb"
	localPartition = "Data-local.sqlitedb"
)

// Index holds the secondary-source attributes for one invocation, keyed
// by Key(list, title). It is built once, read-only afterwards, and
// discarded at end of run.
type Index struct {
	flagged  map[string]struct{}
	tags     map[string][]string
	sections map[string]string
}

// Empty returns an index with no attributes. Lookups against it behave
// as if the secondary source held no rows.
func Empty() *Index {
	return &Index{
		flagged:  map[string]struct{}{},
		tags:     map[string][]string{},
		sections: map[string]string{},
	}
}

// Build scans every readable partition under dir and returns the merged
// index. The secondary source is opened strictly read-only and is never
// written. Unreadability at any level degrades rather than fails: a
// missing directory yields an empty index, an unreadable partition is
// skipped, a malformed row or membership blob is skipped.
func Build(dir string) *Index {
	idx := Empty()

	paths, err := filepath.Glob(filepath.Join(dir, partitionGlob))
	if err != nil {
		return idx
	}
	for _, path := range paths {
		if filepath.Base(path) == localPartition {
			continue
		}
		idx.scanPartition(path)
	}
	return idx
}

// Flagged reports whether the reminder behind key is flagged.
func (x *Index) Flagged(key string) bool {
	_, ok := x.flagged[key]
	return ok
}

// Tags returns the tag names for key in source row order. Duplicates
// appended across partitions are preserved.
func (x *Index) Tags(key string) []string {
	return x.tags[key]
}

// Section returns the section display name for key, if the reminder is
// placed in one.
func (x *Index) Section(key string) (string, bool) {
	s, ok := x.sections[key]
	return s, ok
}

func (x *Index) scanPartition(path string) {
	dsn := "file:" + path + "?mode=ro&immutable=1"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return
	}
	defer db.Close()

	idToKey := x.scanReminders(db)
	x.scanTags(db)
	x.scanSections(db, idToKey)
}

// scanReminders fills the flagged set and returns the partition's
// reminder-identifier to key mapping for the section join.
func (x *Index) scanReminders(db *sql.DB) map[string]string {
	idToKey := map[string]string{}

	rows, err := db.Query(`SELECT identifier, list_name, title, flagged FROM reminders`)
	if err != nil {
		return idToKey
	}
	defer rows.Close()

	for rows.Next() {
		var id, list, title string
		var flagged int
		if err := rows.Scan(&id, &list, &title, &flagged); err != nil {
			continue
		}
		key := Key(list, title)
		idToKey[id] = key
		if flagged != 0 {
			x.flagged[key] = struct{}{}
		}
	}
	return idToKey
}

// scanTags appends tag names per key in rowid order, which is the
// source's insertion order.
func (x *Index) scanTags(db *sql.DB) {
	rows, err := db.Query(`
		SELECT r.list_name, r.title, h.name
		FROM hashtags h
		JOIN reminders r ON r.identifier = h.reminder_identifier
		ORDER BY h.rowid`)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var list, title, name string
		if err := rows.Scan(&list, &title, &name); err != nil {
			continue
		}
		key := Key(list, title)
		x.tags[key] = append(x.tags[key], name)
	}
}

// scanSections resolves the two-hop join: section identifier to display
// name, then the per-list membership blob mapping reminder identifier to
// section identifier. Last write wins on key collisions across
// partitions.
func (x *Index) scanSections(db *sql.DB, idToKey map[string]string) {
	names := map[string]string{}
	rows, err := db.Query(`SELECT identifier, display_name FROM sections`)
	if err != nil {
		return
	}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			continue
		}
		names[id] = name
	}
	rows.Close()

	rows, err = db.Query(`SELECT memberships FROM lists WHERE memberships IS NOT NULL`)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			continue
		}
		var membership map[string]string
		if err := json.Unmarshal(blob, &membership); err != nil {
			continue
		}
		for reminderID, sectionID := range membership {
			key, ok := idToKey[reminderID]
			if !ok {
				continue
			}
			name, ok := names[sectionID]
			if !ok {
				continue
			}
			x.sections[key] = name
		}
	}
}
