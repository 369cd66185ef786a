package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vab-labo/reminders-cli/internal/domain"
	"github.com/vab-labo/reminders-cli/internal/engine"
)

func addCmd() *cobra.Command {
	var (
		notes    string
		url      string
		dueDate  string
		priority string
		remindAt string
		repeat   string
		interval int
		flagged  bool
	)

	cmd := &cobra.Command{
		Use:   "add [list] [title...]",
		Short: "Add a reminder to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, _, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			req := engine.AddRequest{
				Title:   joinArgs(args[1:]),
				Content: notes,
				URL:     url,
			}

			due, allDay, err := parseDueDate(dueDate)
			if err != nil {
				return err
			}
			req.DueDate = due
			req.AllDay = allDay

			p, ok := domain.ParsePriority(priority)
			if !ok {
				return fmt.Errorf("invalid priority %q (want low, medium or high)", priority)
			}
			req.Priority = p

			if remindAt != "" {
				at, _, err := parseDueDate(remindAt)
				if err != nil {
					return err
				}
				req.RemindAt = at
			}

			rec, err := parseRepeat(repeat, interval)
			if err != nil {
				return err
			}
			req.Recurrence = rec

			if cmd.Flags().Changed("flagged") {
				req.Flagged = &flagged
			}

			r, err := e.Add(args[0], req)
			if err != nil {
				return err
			}
			fmt.Printf("Added '%s' to %s\n", r.Title, r.List)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	cmd.Flags().StringVar(&url, "url", "", "attach a URL to the notes")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "due date (YYYY-MM-DD, 'YYYY-MM-DD HH:MM', today, tomorrow)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority: low, medium or high")
	cmd.Flags().StringVar(&remindAt, "remind", "", "remind-me alarm time")
	cmd.Flags().StringVar(&repeat, "repeat", "", "repeat: daily, weekdays, weekly, biweekly, monthly, yearly")
	cmd.Flags().IntVar(&interval, "interval", 1, "repeat every N periods")
	cmd.Flags().BoolVar(&flagged, "flagged", false, "flag the reminder")
	return cmd
}

func editCmd() *cobra.Command {
	var (
		title        string
		notes        string
		url          string
		dueDate      string
		clearDueDate bool
		priority     string
		remindAt     string
		repeat       string
		interval     int
		flagged      bool
	)

	cmd := &cobra.Command{
		Use:   "edit [list] [index|id]",
		Short: "Edit fields of a reminder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, _, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			var req engine.EditRequest
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("notes") {
				req.Content = &notes
			}
			if cmd.Flags().Changed("url") {
				req.URL = &url
			}
			if clearDueDate {
				req.ClearDueDate = true
			} else if dueDate != "" {
				due, allDay, err := parseDueDate(dueDate)
				if err != nil {
					return err
				}
				req.DueDate = due
				req.AllDay = &allDay
			}
			if cmd.Flags().Changed("priority") {
				p, ok := domain.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("invalid priority %q (want low, medium or high)", priority)
				}
				req.Priority = &p
			}
			if remindAt != "" {
				at, _, err := parseDueDate(remindAt)
				if err != nil {
					return err
				}
				req.RemindAt = at
			}
			if repeat != "" {
				rec, err := parseRepeat(repeat, interval)
				if err != nil {
					return err
				}
				req.Recurrence = rec
			}
			if cmd.Flags().Changed("flagged") {
				req.Flagged = &flagged
			}

			r, err := e.Edit(args[0], args[1], req)
			if err != nil {
				return err
			}
			fmt.Printf("Updated '%s'\n", r.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&notes, "notes", "", "new free-text notes")
	cmd.Flags().StringVar(&url, "url", "", "new URL")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "new due date")
	cmd.Flags().BoolVar(&clearDueDate, "clear-due-date", false, "remove the due date")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")
	cmd.Flags().StringVar(&remindAt, "remind", "", "new remind-me alarm time")
	cmd.Flags().StringVar(&repeat, "repeat", "", "new repeat rule")
	cmd.Flags().IntVar(&interval, "interval", 1, "repeat every N periods")
	cmd.Flags().BoolVar(&flagged, "flagged", false, "flag or unflag the reminder")
	return cmd
}

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [list] [index|id]",
		Short: "Mark a reminder as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, _, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			r, err := e.Complete(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Completed '%s'\n", r.Title)
			return nil
		},
	}
}

func uncompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uncomplete [list] [index|id]",
		Short: "Reopen a completed reminder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, _, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			r, err := e.Uncomplete(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Reopened '%s'\n", r.Title)
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [list] [index|id]",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, _, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			r, err := e.Delete(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Deleted '%s'\n", r.Title)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-list [name]",
		Short: "Create a new reminders list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, _, err := getEngine()
			if err != nil {
				return err
			}
			defer s.Close()

			l, err := e.CreateList(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created list '%s'\n", l.Name)
			return nil
		},
	}
}
