package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/Veraticus/jotbot/internal/analyzer"
	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/cli"
	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/model"
	"github.com/Veraticus/jotbot/internal/service"
	"github.com/Veraticus/jotbot/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func chatCmd() *cobra.Command {
	var (
		watchDatasets bool
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Analyze and store messages read from stdin",
		Long: `Read messages from stdin, one per line. Every purchase or task found is
stored; other messages are acknowledged and skipped.

With --watch, editing a dataset file retrains its classifier in the
background. Messages keep being answered by the previous model until the
new one is ready.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			store, err := initStorage(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			a, bank, err := initAnalyzer(cmd.Context(), settings, store)
			if err != nil {
				return err
			}

			session := &chatSession{
				analyzer: a,
				store:    store,
				out:      cmd.OutOrStdout(),
				save:     !dryRun,
			}

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := interrupts.HandleInterrupts(cmd.Context(), session.stats)
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			g, ctx := errgroup.WithContext(ctx)

			if watchDatasets {
				watcher, err := watch.NewDatasetWatcher(settings.Datasets, settings.WatchDebounce,
					func(ctx context.Context, slots []classifier.Slot) {
						slog.Info("Datasets changed, retraining", "slots", fmt.Sprint(slots))
						if _, err := trainSlots(ctx, bank, store, settings, slots, nil); err != nil {
							common.LogError(err, "Retraining failed, keeping previous models", nil)
						}
					})
				if err != nil {
					return err
				}
				defer func() { _ = watcher.Close() }()

				g.Go(func() error {
					if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
						return err
					}
					return nil
				})
			}

			g.Go(func() error {
				defer cancel()
				return session.run(ctx, cmd.InOrStdin())
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watchDatasets, "watch", "w", false, "retrain classifiers when their datasets change")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "analyze without storing")

	return cmd
}

type chatSession struct {
	analyzer  *analyzer.Analyzer
	store     service.Storage
	out       io.Writer
	purchases atomic.Int64
	tasks     atomic.Int64
	save      bool
}

func (s *chatSession) stats() (int, int) {
	return int(s.purchases.Load()), int(s.tasks.Load())
}

// run answers messages until input ends or ctx is done.
func (s *chatSession) run(ctx context.Context, in io.Reader) error {
	reader := cli.NewMessageReader(in)
	defer reader.Close()

	for {
		message, err := reader.Next(ctx)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, cli.ErrInputCancelled):
			return ctx.Err()
		case err != nil:
			return fmt.Errorf("failed to read message: %w", err)
		}

		if err := s.handle(ctx, message); err != nil {
			if common.SeverityOf(err) == common.SeverityFatal {
				return err
			}
			fmt.Fprintln(s.out, cli.FormatWarning(err.Error()))
		}
	}
}

func (s *chatSession) handle(ctx context.Context, message string) error {
	item, err := s.analyzer.Analyze(ctx, message)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, cli.RenderItem(item))
	if item == nil || !s.save {
		return nil
	}

	id, err := saveItem(ctx, s.store, item, message)
	if err != nil {
		return err
	}

	switch item.Kind() {
	case model.KindPurchase:
		s.purchases.Add(1)
	case model.KindTask:
		s.tasks.Add(1)
	}
	slog.Debug("Saved item", "kind", string(item.Kind()), "id", id)
	return nil
}
