package attrs

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// writePartition creates a secondary-source partition at path and runs
// the given inserts against it.
func writePartition(t *testing.T, path string, inserts func(db *sql.DB)) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open partition: %v", err)
	}
	defer db.Close()

	ddl := `
	CREATE TABLE reminders (
		identifier TEXT PRIMARY KEY,
		list_name  TEXT NOT NULL,
		title      TEXT NOT NULL,
		flagged    INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE hashtags (
		reminder_identifier TEXT NOT NULL,
		name                TEXT NOT NULL
	);
	CREATE TABLE sections (
		identifier   TEXT PRIMARY KEY,
		display_name TEXT NOT NULL
	);
	CREATE TABLE lists (
		name        TEXT PRIMARY KEY,
		memberships BLOB
	);`
	if _, err := db.Exec(ddl); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	inserts(db)
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %s: %v", query, err)
	}
}

func TestKeySeparatesLists(t *testing.T) {
	if Key("Home", "Buy milk") == Key("Work", "Buy milk") {
		t.Fatal("same title in different lists must not collide")
	}
	if Key("Home", "Buy milk") != Key("Home", "Buy milk") {
		t.Fatal("key must be deterministic")
	}
}

func TestBuildMissingDirectory(t *testing.T) {
	idx := Build(filepath.Join(t.TempDir(), "does-not-exist"))
	if idx.Flagged(Key("Home", "x")) {
		t.Fatal("empty index should report nothing flagged")
	}
	if tags := idx.Tags(Key("Home", "x")); len(tags) != 0 {
		t.Fatalf("empty index returned tags %v", tags)
	}
	if _, ok := idx.Section(Key("Home", "x")); ok {
		t.Fatal("empty index returned a section")
	}
}

func TestBuildFlaggedAndTags(t *testing.T) {
	dir := t.TempDir()
	writePartition(t, filepath.Join(dir, "Data-1.sqlitedb"), func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO reminders VALUES ('r1', 'Home', 'Buy milk', 1)`)
		mustExec(t, db, `INSERT INTO reminders VALUES ('r2', 'Home', 'Call mom', 0)`)
		mustExec(t, db, `INSERT INTO hashtags VALUES ('r1', 'errand')`)
		mustExec(t, db, `INSERT INTO hashtags VALUES ('r1', 'food')`)
		mustExec(t, db, `INSERT INTO hashtags VALUES ('r2', 'family')`)
	})

	idx := Build(dir)

	if !idx.Flagged(Key("Home", "Buy milk")) {
		t.Fatal("r1 should be flagged")
	}
	if idx.Flagged(Key("Home", "Call mom")) {
		t.Fatal("r2 should not be flagged")
	}

	tags := idx.Tags(Key("Home", "Buy milk"))
	if len(tags) != 2 || tags[0] != "errand" || tags[1] != "food" {
		t.Fatalf("tags out of order: %v", tags)
	}
}

func TestBuildSectionTwoHopJoin(t *testing.T) {
	dir := t.TempDir()
	writePartition(t, filepath.Join(dir, "Data-1.sqlitedb"), func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO reminders VALUES ('r1', 'Work', 'Ship release', 0)`)
		mustExec(t, db, `INSERT INTO reminders VALUES ('r2', 'Work', 'Write docs', 0)`)
		mustExec(t, db, `INSERT INTO sections VALUES ('s1', 'Doing')`)
		mustExec(t, db, `INSERT INTO lists VALUES ('Work', ?)`, []byte(`{"r1":"s1"}`))
	})

	idx := Build(dir)

	if s, ok := idx.Section(Key("Work", "Ship release")); !ok || s != "Doing" {
		t.Fatalf("section = %q, %v", s, ok)
	}
	if _, ok := idx.Section(Key("Work", "Write docs")); ok {
		t.Fatal("r2 is in no section")
	}
}

func TestBuildMalformedMembershipBlobSkipped(t *testing.T) {
	dir := t.TempDir()
	writePartition(t, filepath.Join(dir, "Data-1.sqlitedb"), func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO reminders VALUES ('r1', 'Work', 'Ship release', 1)`)
		mustExec(t, db, `INSERT INTO sections VALUES ('s1', 'Doing')`)
		mustExec(t, db, `INSERT INTO lists VALUES ('Work', ?)`, []byte(`not json`))
	})

	idx := Build(dir)

	// Section enrichment degrades to "no section"; other attributes survive.
	if _, ok := idx.Section(Key("Work", "Ship release")); ok {
		t.Fatal("malformed blob should yield no section")
	}
	if !idx.Flagged(Key("Work", "Ship release")) {
		t.Fatal("flagged scan must not be affected by a bad blob")
	}
}

func TestBuildSkipsLocalPartition(t *testing.T) {
	dir := t.TempDir()
	writePartition(t, filepath.Join(dir, "Data-1.sqlitedb"), func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO reminders VALUES ('r1', 'Home', 'Real', 1)`)
	})
	// The local partition has an incompatible schema in the wild; here a
	// compatible one proves it is excluded purely by name.
	writePartition(t, filepath.Join(dir, "Data-local.sqlitedb"), func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO reminders VALUES ('r9', 'Home', 'Ghost', 1)`)
	})

	idx := Build(dir)

	if !idx.Flagged(Key("Home", "Real")) {
		t.Fatal("regular partition should be scanned")
	}
	if idx.Flagged(Key("Home", "Ghost")) {
		t.Fatal("local partition must be skipped by name")
	}
}

func TestBuildMergesPartitions(t *testing.T) {
	dir := t.TempDir()
	writePartition(t, filepath.Join(dir, "Data-1.sqlitedb"), func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO reminders VALUES ('r1', 'Home', 'Buy milk', 0)`)
		mustExec(t, db, `INSERT INTO hashtags VALUES ('r1', 'errand')`)
	})
	writePartition(t, filepath.Join(dir, "Data-2.sqlitedb"), func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO reminders VALUES ('r1b', 'Home', 'Buy milk', 1)`)
		mustExec(t, db, `INSERT INTO hashtags VALUES ('r1b', 'errand')`)
	})

	idx := Build(dir)

	key := Key("Home", "Buy milk")
	if !idx.Flagged(key) {
		t.Fatal("flag from second partition should be visible")
	}
	// Tags append across partitions, duplicates preserved.
	tags := idx.Tags(key)
	if len(tags) != 2 || tags[0] != "errand" || tags[1] != "errand" {
		t.Fatalf("tags = %v", tags)
	}
}

func TestSameListSameTitleCollapses(t *testing.T) {
	dir := t.TempDir()
	writePartition(t, filepath.Join(dir, "Data-1.sqlitedb"), func(db *sql.DB) {
		// Two distinct reminders, same list and title. The composite key
		// cannot tell them apart: both resolve to one merged attribute set.
		mustExec(t, db, `INSERT INTO reminders VALUES ('r1', 'Home', 'Buy milk', 1)`)
		mustExec(t, db, `INSERT INTO reminders VALUES ('r2', 'Home', 'Buy milk', 0)`)
		mustExec(t, db, `INSERT INTO hashtags VALUES ('r1', 'a')`)
		mustExec(t, db, `INSERT INTO hashtags VALUES ('r2', 'b')`)
	})

	idx := Build(dir)

	key := Key("Home", "Buy milk")
	if !idx.Flagged(key) {
		t.Fatal("merged set carries the flag from either row")
	}
	tags := idx.Tags(key)
	if len(tags) != 2 {
		t.Fatalf("expected merged tags from both rows, got %v", tags)
	}
}

func TestBuildCorruptPartitionSkipped(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Data-1.sqlitedb"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	writePartition(t, filepath.Join(dir, "Data-2.sqlitedb"), func(db *sql.DB) {
		mustExec(t, db, `INSERT INTO reminders VALUES ('r1', 'Home', 'Survivor', 1)`)
	})

	idx := Build(dir)
	if !idx.Flagged(Key("Home", "Survivor")) {
		t.Fatal("healthy partition should still be scanned")
	}
}
