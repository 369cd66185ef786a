package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vab-labo/reminders-cli/internal/domain"
)

//go:embed schema.sql
var schema string

// SQLite is the SQLite-backed primary store.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// New opens (or creates) the database at dbPath and initializes the
// schema.
func New(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*SQLite, error) {
	return New(":memory:")
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// RequestAccess always grants: a local database has no permission model.
// The method exists so callers written against the platform store's
// access flow work unchanged.
func (s *SQLite) RequestAccess() (bool, error) {
	return true, nil
}

// Lists returns all lists ordered by name.
func (s *SQLite) Lists() ([]domain.List, error) {
	rows, err := s.db.Query("SELECT id, name, color FROM lists ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.List
	for rows.Next() {
		var l domain.List
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// CreateList creates a new named list.
func (s *SQLite) CreateList(name string) (domain.List, error) {
	l := domain.List{ID: uuid.New().String(), Name: name}
	_, err := s.db.Exec("INSERT INTO lists (id, name) VALUES (?, ?)", l.ID, l.Name)
	if err != nil {
		return domain.List{}, fmt.Errorf("create list %q: %w", name, err)
	}
	return l, nil
}

// FetchReminders returns the reminders of the named lists (all lists when
// listNames is empty) in insertion order. Completed items are excluded
// unless includeCompleted is set.
func (s *SQLite) FetchReminders(listNames []string, includeCompleted bool) ([]domain.Reminder, error) {
	query := `
		SELECT r.id, l.name, r.title, r.notes, r.completed, r.completion_date,
		       r.priority, r.due_date, r.all_day, r.creation_date, r.modification_date
		FROM reminders r
		JOIN lists l ON l.id = r.list_id`
	var conds []string
	var args []any

	if len(listNames) > 0 {
		placeholders := strings.Repeat("?,", len(listNames))
		conds = append(conds, "l.name IN ("+placeholders[:len(placeholders)-1]+")")
		for _, n := range listNames {
			args = append(args, n)
		}
	}
	if !includeCompleted {
		conds = append(conds, "r.completed = 0")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch reminders: %w", err)
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		var r domain.Reminder
		var completed, allDay int
		var priority int
		var completionDate, dueDate sql.NullString
		var creationDate, modificationDate string

		if err := rows.Scan(&r.ID, &r.List, &r.Title, &r.Notes, &completed, &completionDate,
			&priority, &dueDate, &allDay, &creationDate, &modificationDate); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}

		r.Completed = completed != 0
		r.AllDay = allDay != 0
		r.Priority = domain.PriorityFromOrdinal(priority)
		r.CompletionDate = parseNullTime(completionDate)
		r.DueDate = parseNullTime(dueDate)
		r.CreationDate, _ = time.Parse(time.RFC3339, creationDate)
		r.ModificationDate, _ = time.Parse(time.RFC3339, modificationDate)

		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch reminders: %w", err)
	}

	if err := s.attachAlarms(reminders); err != nil {
		return nil, err
	}
	if err := s.attachRecurrences(reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// Save upserts a reminder. A missing identifier is assigned; the
// modification date is stamped. Alarms and recurrence are replaced
// wholesale so a new time-based alarm supersedes any existing ones.
func (s *SQLite) Save(r *domain.Reminder) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now()
	if r.CreationDate.IsZero() {
		r.CreationDate = now
	}
	r.ModificationDate = now

	var listID string
	err := s.db.QueryRow("SELECT id FROM lists WHERE name = ?", r.List).Scan(&listID)
	if err != nil {
		return fmt.Errorf("resolve list %q: %w", r.List, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO reminders (id, list_id, title, notes, completed, completion_date,
		                       priority, due_date, all_day, creation_date, modification_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			list_id = excluded.list_id,
			title = excluded.title,
			notes = excluded.notes,
			completed = excluded.completed,
			completion_date = excluded.completion_date,
			priority = excluded.priority,
			due_date = excluded.due_date,
			all_day = excluded.all_day,
			modification_date = excluded.modification_date`,
		r.ID, listID, r.Title, r.Notes, boolInt(r.Completed), formatNullTime(r.CompletionDate),
		r.Priority.Ordinal(), formatNullTime(r.DueDate), boolInt(r.AllDay),
		r.CreationDate.Format(time.RFC3339), r.ModificationDate.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM alarms WHERE reminder_id = ?", r.ID); err != nil {
		return fmt.Errorf("clear alarms: %w", err)
	}
	for _, a := range r.Alarms {
		var fire, location sql.NullString
		kind := "location"
		if a.Kind == domain.AlarmTime {
			kind = "time"
			fire = sql.NullString{String: a.FireDate.Format(time.RFC3339), Valid: true}
		} else {
			location = sql.NullString{String: a.Location, Valid: true}
		}
		if _, err := tx.Exec(
			"INSERT INTO alarms (reminder_id, kind, fire_date, location) VALUES (?, ?, ?, ?)",
			r.ID, kind, fire, location); err != nil {
			return fmt.Errorf("save alarm: %w", err)
		}
	}

	if _, err := tx.Exec("DELETE FROM recurrences WHERE reminder_id = ?", r.ID); err != nil {
		return fmt.Errorf("clear recurrence: %w", err)
	}
	if r.Recurrence != nil {
		if _, err := tx.Exec(
			"INSERT INTO recurrences (reminder_id, frequency, interval, days) VALUES (?, ?, ?, ?)",
			r.ID, freqString(r.Recurrence.Frequency), r.Recurrence.Interval,
			joinDays(r.Recurrence.Days)); err != nil {
			return fmt.Errorf("save recurrence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Remove deletes a reminder. Alarms and recurrence go with it.
func (s *SQLite) Remove(r *domain.Reminder) error {
	result, err := s.db.Exec("DELETE FROM reminders WHERE id = ?", r.ID)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("reminder %s not in store", r.ID)
	}
	return nil
}

func (s *SQLite) attachAlarms(reminders []domain.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Reminder, len(reminders))
	for i := range reminders {
		byID[reminders[i].ID] = &reminders[i]
	}

	rows, err := s.db.Query("SELECT reminder_id, kind, fire_date, location FROM alarms ORDER BY id")
	if err != nil {
		return fmt.Errorf("fetch alarms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reminderID, kind string
		var fire, location sql.NullString
		if err := rows.Scan(&reminderID, &kind, &fire, &location); err != nil {
			return fmt.Errorf("scan alarm: %w", err)
		}
		r, ok := byID[reminderID]
		if !ok {
			continue
		}
		a := domain.Alarm{Kind: domain.AlarmLocation, Location: location.String}
		if kind == "time" {
			a = domain.Alarm{Kind: domain.AlarmTime}
			a.FireDate, _ = time.Parse(time.RFC3339, fire.String)
		}
		r.Alarms = append(r.Alarms, a)
	}
	return rows.Err()
}

func (s *SQLite) attachRecurrences(reminders []domain.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Reminder, len(reminders))
	for i := range reminders {
		byID[reminders[i].ID] = &reminders[i]
	}

	rows, err := s.db.Query("SELECT reminder_id, frequency, interval, days FROM recurrences")
	if err != nil {
		return fmt.Errorf("fetch recurrences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reminderID, frequency, days string
		var interval int
		if err := rows.Scan(&reminderID, &frequency, &interval, &days); err != nil {
			return fmt.Errorf("scan recurrence: %w", err)
		}
		r, ok := byID[reminderID]
		if !ok {
			continue
		}
		r.Recurrence = &domain.Recurrence{
			Frequency: freqFromString(frequency),
			Interval:  interval,
			Days:      splitDays(days),
		}
	}
	return rows.Err()
}

func parseNullTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func freqString(f domain.Frequency) string {
	switch f {
	case domain.FreqDaily:
		return "daily"
	case domain.FreqWeekly:
		return "weekly"
	case domain.FreqMonthly:
		return "monthly"
	case domain.FreqYearly:
		return "yearly"
	default:
		return ""
	}
}

func freqFromString(s string) domain.Frequency {
	switch s {
	case "daily":
		return domain.FreqDaily
	case "weekly":
		return domain.FreqWeekly
	case "monthly":
		return domain.FreqMonthly
	case "yearly":
		return domain.FreqYearly
	default:
		return domain.FreqNone
	}
}

func joinDays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func splitDays(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}
