package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPrefetchCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "prefetch",
		Short: "Download upcoming readings for offline use",
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

			updates := core.scheduler.Subscribe()
			done := make(chan struct{})
			go func() {
				defer close(done)
				for p := range updates {
					fmt.Printf("\r%d/%d downloaded, %d failed", p.Completed, p.Total, p.Failed)
				}
			}()

			result := core.scheduler.Prefetch(context.Background())
			core.scheduler.Unsubscribe(updates)
			<-done
			fmt.Println()

			if result.Failed > 0 {
				color.Yellow("prefetch finished with %d of %d items failed", result.Failed, result.Total)
				return nil
			}
			color.Green("all %d items downloaded", result.Total)
			return nil
		},
	}
	return command
}
