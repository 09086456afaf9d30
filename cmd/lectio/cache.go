package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCacheCommand() *cobra.Command {
	cacheCommand := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the local content cache",
	}

	cacheCommand.AddCommand(newCacheStatusCommand())
	cacheCommand.AddCommand(newCacheClearCommand())

	return cacheCommand
}

func newCacheStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cached entry counts and storage usage",
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

			if core.store == nil {
				color.Red("local cache is unavailable; running network-only")
				return nil
			}

			ctx := context.Background()
			texts, err := core.store.CountTexts(ctx)
			if err != nil {
				return fmt.Errorf("store.CountTexts > %w", err)
			}
			days, err := core.store.CountCalendar(ctx)
			if err != nil {
				return fmt.Errorf("store.CountCalendar > %w", err)
			}
			size, err := core.store.Size()
			if err != nil {
				return fmt.Errorf("store.Size > %w", err)
			}

			fmt.Printf("cached texts:         %d\n", texts)
			fmt.Printf("cached calendar days: %d\n", days)
			fmt.Printf("database size:        %.1f KiB\n", float64(size)/1024)
			return nil
		},
	}
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached remote content (study progress is kept)",
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

			if core.store == nil {
				color.Red("local cache is unavailable; nothing to clear")
				return nil
			}
			if err := core.store.Clear(context.Background()); err != nil {
				return fmt.Errorf("store.Clear > %w", err)
			}
			color.Green("cache cleared")
			return nil
		},
	}
}
