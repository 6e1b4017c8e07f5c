package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/aretw0/twodo/pkg/adapters/lifecycle"
	"github.com/aretw0/twodo/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes to the note list",
	Long:  `Print a summary line every time the note slot is written or removed, by this or any other process. Stops on Ctrl+C.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := workspaceRoot()
		if err != nil {
			fatal("Error", err)
		}

		store := openStore(root)
		watchable, ok := store.(core.Watchable)
		if !ok {
			fatal("Cannot watch", fmt.Errorf("adapter %q does not support watching", cfg.Store.Adapter))
		}

		svc := serviceFor(root, store)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := watchable.Watch(ctx, cfg.Store.Key)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		source := lifecycleadapter.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Printf("Watching %q (%s)\n", cfg.Store.Key, summary(svc))
		for ev := range source.Events() {
			e, ok := ev.(core.Event)
			if !ok {
				continue
			}
			slog.Debug("slot changed", "event", e.String(), "origin", e.Origin)

			if err := svc.Load(ctx); err != nil {
				slog.Warn("failed to reload notes", "error", err)
				continue
			}
			fmt.Printf("%s %s: %s\n", time.Unix(e.Timestamp, 0).Format(time.TimeOnly), e.Type, summary(svc))
		}
	},
}

func summary(svc *core.Service) string {
	v := svc.View(core.Query{})
	return fmt.Sprintf("%d notes, %d completed", len(v.Entries), v.Completed)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
