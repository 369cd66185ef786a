package store

import "github.com/vab-labo/reminders-cli/internal/domain"

// Store is the primary reminder store. The engine only talks to this
// interface; the SQLite implementation below is what the CLI runs
// against, but anything honoring these semantics can stand in (tests use
// an in-memory instance, a platform-native store would satisfy it too).
//
// FetchReminders returns a fully materialized slice in a stable fetch
// order; there is no streaming. Save is an upsert keyed on the reminder
// identifier.
type Store interface {
	RequestAccess() (bool, error)
	Lists() ([]domain.List, error)
	FetchReminders(listNames []string, includeCompleted bool) ([]domain.Reminder, error)
	Save(r *domain.Reminder) error
	Remove(r *domain.Reminder) error
	CreateList(name string) (domain.List, error)
	Close() error
}
