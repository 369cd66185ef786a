package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vab-labo/reminders-cli/internal/config"
	"github.com/vab-labo/reminders-cli/internal/domain"
	"github.com/vab-labo/reminders-cli/internal/engine"
	"github.com/vab-labo/reminders-cli/internal/flagger"
	"github.com/vab-labo/reminders-cli/internal/present"
	"github.com/vab-labo/reminders-cli/internal/store"
)

var (
	configPath string
	dbPath     string
	sourcesDir string
	noColor    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "reminders",
		Short:        "Inspect and mutate your reminders from the command line",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sourcesDir, "sources", "", "secondary source directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(showListsCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(showAllCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(completeCmd())
	rootCmd.AddCommand(uncompleteCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if sourcesDir != "" {
		cfg.Enrichment.SourcesDir = sourcesDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEngine wires the store, secondary source and flag setter together.
// The caller must Close the returned store.
func getEngine() (*engine.Engine, *store.SQLite, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := store.New(cfg.Store.Path)
	if err != nil {
		return nil, nil, nil, err
	}

	opts := engine.Options{
		SourcesDir: cfg.Enrichment.SourcesDir,
		Warnings:   os.Stderr,
	}
	if fl := flagger.New(cfg.Enrichment.FlagCommand); fl != nil {
		opts.Flagger = fl
	}
	return engine.New(s, opts), s, cfg, nil
}

func styles(cfg *config.Config) *present.Styles {
	if noColor || !cfg.UI.ColoredOutput || !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil
	}
	return present.DefaultStyles()
}

// parseDueDate accepts "today", "tomorrow", a bare date (all-day) or a
// date with a time of day.
func parseDueDate(s string) (*time.Time, bool, error) {
	if s == "" {
		return nil, false, nil
	}
	switch s {
	case "today":
		t := startOfDay(time.Now())
		return &t, true, nil
	case "tomorrow":
		t := startOfDay(time.Now()).AddDate(0, 0, 1)
		return &t, true, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return &t, false, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return &t, true, nil
	}
	return nil, false, fmt.Errorf("invalid due date %q (want YYYY-MM-DD, 'YYYY-MM-DD HH:MM', today or tomorrow)", s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// parseRepeat maps a repeat label to a recurrence rule.
func parseRepeat(label string, interval int) (*domain.Recurrence, error) {
	if label == "" {
		return nil, nil
	}
	if interval < 1 {
		interval = 1
	}
	switch label {
	case "daily":
		return &domain.Recurrence{Frequency: domain.FreqDaily, Interval: interval}, nil
	case "weekly":
		return &domain.Recurrence{Frequency: domain.FreqWeekly, Interval: interval}, nil
	case "biweekly":
		return &domain.Recurrence{Frequency: domain.FreqWeekly, Interval: 2}, nil
	case "weekdays":
		return &domain.Recurrence{
			Frequency: domain.FreqWeekly,
			Interval:  interval,
			Days: []time.Weekday{
				time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
			},
		}, nil
	case "monthly":
		return &domain.Recurrence{Frequency: domain.FreqMonthly, Interval: interval}, nil
	case "yearly":
		return &domain.Recurrence{Frequency: domain.FreqYearly, Interval: interval}, nil
	}
	return nil, fmt.Errorf("invalid repeat %q (want daily, weekdays, weekly, biweekly, monthly or yearly)", label)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
