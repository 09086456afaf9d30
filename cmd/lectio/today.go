package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amolina-dev/lectio/internal/cache"
	"github.com/amolina-dev/lectio/internal/study"
)

// dayFlag is a command line flag holding a calendar day in YYYY-MM-DD form.
type dayFlag study.Day

func (d *dayFlag) Set(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("invalid day %q, expected YYYY-MM-DD", value)
	}
	*d = dayFlag(value)
	return nil
}

func (d *dayFlag) String() string {
	return string(*d)
}

func (d *dayFlag) Type() string {
	return "day"
}

func newTodayCommand() *cobra.Command {
	var showText bool
	var day dayFlag
	command := &cobra.Command{
		Use:   "today",
		Short: "Show today's scheduled reading for every active study path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			core, err := buildCore(cfg)
			if err != nil {
				return err
			}
			defer core.Close()

			ctx := context.Background()
			today := study.DayOf(time.Now())
			if day != "" {
				today = study.Day(day)
			}

			for _, path := range cfg.Paths.Active {
				entry, err := core.cache.Calendar(ctx, path, today)
				if errors.Is(err, cache.ErrOfflineNoCache) {
					color.Red("%s: offline and nothing cached yet", path)
					continue
				}
				if err != nil {
					return fmt.Errorf("cache.Calendar > %w", err)
				}

				color.Cyan("%s — %s", path, entry.Title)
				if entry.DateLabel != "" {
					fmt.Println(entry.DateLabel)
				}
				if !showText {
					continue
				}

				for _, ref := range entry.Refs {
					text, err := core.cache.Content(ctx, ref)
					if errors.Is(err, cache.ErrOfflineNoCache) {
						color.Yellow("  %s: not cached, connect to download", ref)
						continue
					}
					if err != nil {
						return fmt.Errorf("cache.Content > %w", err)
					}
					printText(text)
				}
			}
			return nil
		},
	}
	command.Flags().BoolVar(&showText, "text", false, "print the reading text, not just the schedule")
	command.Flags().Var(&day, "day", "show another day instead of today (YYYY-MM-DD)")
	return command
}

func printText(entry study.TextEntry) {
	for _, unit := range entry.Units {
		if unit.FirstInChapter {
			color.Magenta("  [%d]", unit.Chapter)
		}
		line := unit.Primary
		if line == "" {
			line = unit.Secondary
		}
		fmt.Printf("  %s\n", line)
	}
}
