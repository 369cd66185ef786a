package engine

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vab-labo/reminders-cli/internal/attrs"
	"github.com/vab-labo/reminders-cli/internal/domain"
	"github.com/vab-labo/reminders-cli/internal/store"
)

// Flagger sets the one attribute the primary store cannot persist,
// through an out-of-band channel. Failures are reported as warnings and
// never retried.
type Flagger interface {
	SetFlag(id string, flagged bool) error
}

// Options configures an Engine.
type Options struct {
	// SourcesDir is the secondary-source directory scanned for attribute
	// partitions. Unreadable or empty means un-enriched output.
	SourcesDir string

	// Flagger is optional; without one, flag changes are skipped with a
	// warning.
	Flagger Flagger

	// Warnings receives non-fatal diagnostics. Defaults to io.Discard.
	Warnings io.Writer
}

// Engine composes the attribute index, filter pipeline, sort engine and
// primary store into the user-facing operations. One Engine serves one
// invocation; it holds no mutable state across operations.
type Engine struct {
	store      store.Store
	sourcesDir string
	flagger    Flagger
	warn       io.Writer
}

// New creates an Engine over the given primary store.
func New(s store.Store, opts Options) *Engine {
	warn := opts.Warnings
	if warn == nil {
		warn = io.Discard
	}
	return &Engine{
		store:      s,
		sourcesDir: opts.SourcesDir,
		flagger:    opts.Flagger,
		warn:       warn,
	}
}

// Query selects and orders reminders for display.
type Query struct {
	// Lists restricts the view to the named lists, matched
	// case-insensitively. Empty means every list.
	Lists    []string
	Criteria Criteria
	Sort     SortKey
	Order    Order
}

// Show fetches candidates, enriches them from the secondary source,
// filters, and orders them. The attribute index is built concurrently
// with the primary fetch; both must finish before filtering starts. With
// SortNone the result carries positional indices 0..n-1 in fetch order.
func (e *Engine) Show(q Query) ([]domain.Enriched, error) {
	if err := e.access(); err != nil {
		return nil, err
	}

	listNames, err := e.resolveLists(q.Lists)
	if err != nil {
		return nil, err
	}

	idxCh := make(chan *attrs.Index, 1)
	go func() { idxCh <- attrs.Build(e.sourcesDir) }()

	includeCompleted := q.Criteria.Completion != IncompleteOnly
	reminders, err := e.store.FetchReminders(listNames, includeCompleted)
	if err != nil {
		return nil, fmt.Errorf("fetch reminders: %w", err)
	}
	idx := <-idxCh

	var items []domain.Enriched
	for _, r := range reminders {
		item := enrich(r, idx)
		if q.Criteria.Matches(&item) {
			items = append(items, item)
		}
	}

	if q.Sort == SortNone {
		for i := range items {
			items[i].Index = i
			items[i].HasIndex = true
		}
	} else {
		Sort(items, q.Sort, q.Order)
	}
	return items, nil
}

// Lists enumerates the reminder lists.
func (e *Engine) Lists() ([]domain.List, error) {
	if err := e.access(); err != nil {
		return nil, err
	}
	lists, err := e.store.Lists()
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return lists, nil
}

// CreateList creates a new named list.
func (e *Engine) CreateList(name string) (domain.List, error) {
	if err := e.access(); err != nil {
		return domain.List{}, err
	}
	l, err := e.store.CreateList(name)
	if err != nil {
		return domain.List{}, fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	return l, nil
}

// AddRequest carries the fields of a new reminder. Content and URL are
// packed into the notes field. Flagged goes through the out-of-band
// setter after the save.
type AddRequest struct {
	Title      string
	Content    string
	URL        string
	DueDate    *time.Time
	AllDay     bool
	Priority   domain.Priority
	RemindAt   *time.Time
	Recurrence *domain.Recurrence
	Flagged    *bool
}

// Add creates a reminder in the named list.
func (e *Engine) Add(listName string, req AddRequest) (*domain.Reminder, error) {
	if err := e.access(); err != nil {
		return nil, err
	}
	name, err := e.resolveList(listName)
	if err != nil {
		return nil, err
	}

	r := &domain.Reminder{
		List:       name,
		Title:      req.Title,
		Notes:      domain.EncodeNotes(req.Content, req.URL),
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		AllDay:     req.AllDay,
		Recurrence: req.Recurrence,
	}
	if req.RemindAt != nil {
		r.SetRemindAlarm(*req.RemindAt)
	}
	if err := e.store.Save(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	if req.Flagged != nil {
		e.setFlag(r.ID, *req.Flagged)
	}
	return r, nil
}

// EditRequest carries partial updates; nil fields are left unchanged.
// ClearDueDate removes the due date outright.
type EditRequest struct {
	Title        *string
	Content      *string
	URL          *string
	DueDate      *time.Time
	AllDay       *bool
	ClearDueDate bool
	Priority     *domain.Priority
	RemindAt     *time.Time
	Recurrence   *domain.Recurrence
	Flagged      *bool
}

// Edit applies a partial update to the reminder addressed by ref.
func (e *Engine) Edit(listName, ref string, req EditRequest) (*domain.Reminder, error) {
	r, err := e.resolve(listName, ref, IncompleteOnly)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Content != nil || req.URL != nil {
		content, url := domain.DecodeNotes(r.Notes)
		if req.Content != nil {
			content = *req.Content
		}
		if req.URL != nil {
			url = *req.URL
		}
		r.Notes = domain.EncodeNotes(content, url)
	}
	if req.ClearDueDate {
		r.DueDate = nil
		r.AllDay = false
	} else if req.DueDate != nil {
		r.DueDate = req.DueDate
		if req.AllDay != nil {
			r.AllDay = *req.AllDay
		}
	}
	if req.Priority != nil {
		r.Priority = *req.Priority
	}
	if req.RemindAt != nil {
		r.SetRemindAlarm(*req.RemindAt)
	}
	if req.Recurrence != nil {
		r.Recurrence = req.Recurrence
	}

	if err := e.store.Save(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	if req.Flagged != nil {
		e.setFlag(r.ID, *req.Flagged)
	}
	return r, nil
}

// Complete marks the addressed reminder done.
func (e *Engine) Complete(listName, ref string) (*domain.Reminder, error) {
	r, err := e.resolve(listName, ref, IncompleteOnly)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	r.Completed = true
	r.CompletionDate = &now
	if err := e.store.Save(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	return r, nil
}

// Uncomplete reopens a completed reminder. The ref addresses the
// completed view, matching what show --only-completed displays.
func (e *Engine) Uncomplete(listName, ref string) (*domain.Reminder, error) {
	r, err := e.resolve(listName, ref, CompleteOnly)
	if err != nil {
		return nil, err
	}
	r.Completed = false
	r.CompletionDate = nil
	if err := e.store.Save(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	return r, nil
}

// Delete removes the addressed reminder.
func (e *Engine) Delete(listName, ref string) (*domain.Reminder, error) {
	r, err := e.resolve(listName, ref, IncompleteOnly)
	if err != nil {
		return nil, err
	}
	if err := e.store.Remove(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	return r, nil
}

func (e *Engine) access() error {
	granted, err := e.store.RequestAccess()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	if !granted {
		return ErrAccessDenied
	}
	return nil
}

// resolveList matches a list name case-insensitively and returns the
// canonical name.
func (e *Engine) resolveList(name string) (string, error) {
	lists, err := e.store.Lists()
	if err != nil {
		return "", fmt.Errorf("list lists: %w", err)
	}
	for _, l := range lists {
		if strings.EqualFold(l.Name, name) {
			return l.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrListNotFound, name)
}

func (e *Engine) resolveLists(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	resolved := make([]string, len(names))
	for i, name := range names {
		canonical, err := e.resolveList(name)
		if err != nil {
			return nil, err
		}
		resolved[i] = canonical
	}
	return resolved, nil
}

// resolve finds one reminder by positional index or identifier prefix
// within the candidate set the user was last shown: the named list in
// fetch order, restricted by completion state.
func (e *Engine) resolve(listName, ref string, completion CompletionState) (*domain.Reminder, error) {
	if err := e.access(); err != nil {
		return nil, err
	}
	name, err := e.resolveList(listName)
	if err != nil {
		return nil, err
	}

	candidates, err := e.store.FetchReminders([]string{name}, completion != IncompleteOnly)
	if err != nil {
		return nil, fmt.Errorf("fetch reminders: %w", err)
	}
	matching := candidates[:0]
	for _, r := range candidates {
		if completion == CompleteOnly && !r.Completed {
			continue
		}
		matching = append(matching, r)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 0 || n >= len(matching) {
			return nil, fmt.Errorf("%w: index %d", ErrReminderNotFound, n)
		}
		r := matching[n]
		return &r, nil
	}
	for _, r := range matching {
		if r.ID != "" && strings.HasPrefix(r.ID, ref) {
			found := r
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrReminderNotFound, ref)
}

func (e *Engine) setFlag(id string, flagged bool) {
	if e.flagger == nil {
		fmt.Fprintf(e.warn, "Warning: no flag command configured, flag not changed\n")
		return
	}
	if err := e.flagger.SetFlag(id, flagged); err != nil {
		fmt.Fprintf(e.warn, "Warning: could not set flag on %s: %v\n", id, err)
	}
}

func enrich(r domain.Reminder, idx *attrs.Index) domain.Enriched {
	key := attrs.Key(r.List, r.Title)
	item := domain.Enriched{Reminder: r, Flagged: idx.Flagged(key), Tags: idx.Tags(key)}
	if section, ok := idx.Section(key); ok {
		item.Section = section
	}
	return item
}
