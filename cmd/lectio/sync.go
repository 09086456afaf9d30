package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	var watch bool
	command := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the local cache with the content provider",
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

			if !watch {
				core.scheduler.Sync(context.Background())
				color.Green("sync finished")
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("syncing every %d minutes, press Ctrl+C to stop\n", cfg.Sync.IntervalMinutes)
			return core.scheduler.Run(ctx)
		},
	}
	command.Flags().BoolVar(&watch, "watch", false, "keep running and sync periodically")
	return command
}
