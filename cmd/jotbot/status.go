package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/cli"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which classifiers are trained",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snaps, err := store.GetClassifiers(ctx)
			if err != nil {
				return fmt.Errorf("failed to load stored classifiers: %w", err)
			}

			rows := make([]cli.StatusRow, 0, len(classifier.Slots()))
			for _, slot := range classifier.Slots() {
				row := cli.StatusRow{Slot: slot.String()}
				for i := range snaps {
					if snaps[i].Slot == slot.String() {
						row.Trained = true
						row.Labels = len(snaps[i].Labels)
						row.Examples = snaps[i].Examples
						row.TrainedAt = snaps[i].TrainedAt
					}
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("jotbot status"))
			if err := cli.RenderStatus(out, rows, time.Now()); err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Database:   %s\n", settings.DatabasePath)
			fmt.Fprintf(out, "Embeddings: %s (%s)\n", settings.EmbeddingsPath, fileSize(settings.EmbeddingsPath))
			return nil
		},
	}
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	return humanize.Bytes(uint64(info.Size()))
}
