package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vab-labo/reminders-cli/internal/api"
	"github.com/vab-labo/reminders-cli/internal/config"
	"github.com/vab-labo/reminders-cli/internal/domain"
	"github.com/vab-labo/reminders-cli/internal/engine"
	"github.com/vab-labo/reminders-cli/internal/present"
)

// showFlags are the filter, sort and format knobs shared by show and
// show-all.
type showFlags struct {
	completed      bool
	onlyCompleted  bool
	dueDate        string
	includeOverdue bool
	hasDueDate     bool
	onlyFlagged    bool
	tag            string
	section        string
	sortKey        string
	sortOrder      string
	format         string
}

func (f *showFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.completed, "include-completed", false, "include completed reminders")
	cmd.Flags().BoolVar(&f.onlyCompleted, "only-completed", false, "show only completed reminders")
	cmd.Flags().StringVar(&f.dueDate, "due-date", "", "only reminders due on this day")
	cmd.Flags().BoolVar(&f.includeOverdue, "include-overdue", false, "with --due-date, also show earlier days")
	cmd.Flags().BoolVar(&f.hasDueDate, "has-due-date", false, "only reminders with a due date")
	cmd.Flags().BoolVar(&f.onlyFlagged, "only-flagged", false, "only flagged reminders")
	cmd.Flags().StringVar(&f.tag, "tag", "", "only reminders carrying this tag")
	cmd.Flags().StringVar(&f.section, "section", "", "only reminders in this section")
	cmd.Flags().StringVar(&f.sortKey, "sort", "none", "sort key: none, due-date, creation-date, modification-date, completion-date")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", "ascending", "sort order: ascending or descending")
	cmd.Flags().StringVar(&f.format, "format", "plain", "output format: plain or json")
}

// query validates the flags and builds the engine query. Mutually
// exclusive completion flags are rejected here, before a Criteria is
// ever built.
func (f *showFlags) query(lists []string) (engine.Query, error) {
	var q engine.Query
	if f.completed && f.onlyCompleted {
		return q, fmt.Errorf("--include-completed and --only-completed are mutually exclusive")
	}

	q.Lists = lists
	switch {
	case f.onlyCompleted:
		q.Criteria.Completion = engine.CompleteOnly
	case f.completed:
		q.Criteria.Completion = engine.AllItems
	default:
		q.Criteria.Completion = engine.IncompleteOnly
	}

	due, _, err := parseDueDate(f.dueDate)
	if err != nil {
		return q, err
	}
	q.Criteria.DueOn = due
	q.Criteria.IncludeOverdue = f.includeOverdue
	q.Criteria.HasDueDate = f.hasDueDate
	q.Criteria.OnlyFlagged = f.onlyFlagged
	q.Criteria.Tag = f.tag
	q.Criteria.Section = f.section

	key, ok := engine.ParseSortKey(f.sortKey)
	if !ok {
		return q, fmt.Errorf("unknown sort key %q", f.sortKey)
	}
	q.Sort = key
	order, ok := engine.ParseOrder(f.sortOrder)
	if !ok {
		return q, fmt.Errorf("unknown sort order %q", f.sortOrder)
	}
	q.Order = order

	return q, nil
}

func (f *showFlags) render(items []domain.Enriched, cfg *config.Config, crossList bool) error {
	switch f.format {
	case "json":
		out, err := present.JSON(items)
		if err != nil {
			return err
		}
		fmt.Print(out)
	case "plain":
		fmt.Print(present.Plain(items, present.PlainOptions{
			ShowList:   crossList,
			Now:        time.Now(),
			TimeFormat: cfg.UI.TimeFormat,
			Styles:     styles(cfg),
		}))
	default:
		return fmt.Errorf("unknown format %q (want plain or json)", f.format)
	}
	return nil
}

func showListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-lists",
		Short: "List the reminder lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, _, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			lists, err := e.Lists()
			if err != nil {
				return err
			}
			for _, l := range lists {
				fmt.Println(l.Name)
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	var flags showFlags

	cmd := &cobra.Command{
		Use:   "show [list]",
		Short: "Show the reminders of one list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, cfg, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			list := cfg.DefaultList
			if len(args) == 1 {
				list = args[0]
			}
			if list == "" {
				return fmt.Errorf("no list given and no default_list configured")
			}

			q, err := flags.query([]string{list})
			if err != nil {
				return err
			}
			items, err := e.Show(q)
			if err != nil {
				return err
			}
			return flags.render(items, cfg, false)
		},
	}
	flags.register(cmd)
	return cmd
}

func showAllCmd() *cobra.Command {
	var flags showFlags

	cmd := &cobra.Command{
		Use:   "show-all",
		Short: "Show reminders across every list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, cfg, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			q, err := flags.query(nil)
			if err != nil {
				return err
			}
			items, err := e.Show(q)
			if err != nil {
				return err
			}
			return flags.render(items, cfg, true)
		},
	}
	flags.register(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only JSON view over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, _, err := getEngine()
			if err != nil {
				return err
			}
			// The store stays open for the lifetime of the server.

			return api.New(e, addr).Run()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8686", "server address")
	return cmd
}
