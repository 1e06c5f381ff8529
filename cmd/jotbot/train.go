package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/cli"
	"github.com/Veraticus/jotbot/internal/config"
	"github.com/Veraticus/jotbot/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func trainCmd() *cobra.Command {
	var (
		only       []string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train classifiers from their datasets",
		Long: `Train the type, purpose and reminder classifiers from their CSV datasets
and store them for later runs. Each dataset has a header row followed by
text,label rows.

A classifier whose training fails keeps its previously stored version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			slots, err := resolveSlots(only)
			if err != nil {
				return err
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bank, err := initBank(ctx, settings, store)
			if err != nil {
				return err
			}

			var progress *cli.TrainingProgress
			if !noProgress {
				total := epochs(settings.Training) * len(slots)
				progress = cli.NewTrainingProgress(cmd.ErrOrStderr(), total, "Training classifiers...")
			}

			trained, err := trainSlots(ctx, bank, store, settings, slots, progress)
			if progress != nil {
				progress.Finish()
			}
			reportTraining(cmd.OutOrStdout(), bank, trained)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "train only these classifiers (type, purpose, reminder)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

// resolveSlots parses slot names. No names means every slot.
func resolveSlots(names []string) ([]classifier.Slot, error) {
	if len(names) == 0 {
		return classifier.Slots(), nil
	}

	seen := make(map[classifier.Slot]bool, len(names))
	slots := make([]classifier.Slot, 0, len(names))
	for _, name := range names {
		slot, err := classifier.ParseSlot(name)
		if err != nil {
			return nil, err
		}
		if !seen[slot] {
			seen[slot] = true
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func epochs(opts classifier.TrainOptions) int {
	if opts.Epochs > 0 {
		return opts.Epochs
	}
	return classifier.DefaultTrainOptions().Epochs
}

// trainSlots trains slots concurrently and stores every model that
// succeeds. Failures are joined; other slots still train.
func trainSlots(
	ctx context.Context,
	bank *classifier.Bank,
	store service.ClassifierStore,
	settings *config.Settings,
	slots []classifier.Slot,
	progress *cli.TrainingProgress,
) ([]classifier.Slot, error) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		trained []classifier.Slot
		errs    []error
	)

	for _, slot := range slots {
		g.Go(func() error {
			if err := trainSlot(ctx, bank, store, settings, slot, progress); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s classifier: %w", slot, err))
				mu.Unlock()
				return nil
			}
			mu.Lock()
			trained = append(trained, slot)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return trained, errors.Join(errs...)
}

func trainSlot(
	ctx context.Context,
	bank *classifier.Bank,
	store service.ClassifierStore,
	settings *config.Settings,
	slot classifier.Slot,
	progress *cli.TrainingProgress,
) error {
	path, err := settings.Dataset(slot)
	if err != nil {
		return err
	}

	examples, err := classifier.ReadDataset(path)
	if err != nil {
		return err
	}

	opts := settings.Training
	if progress != nil {
		opts.Progress = progress.Epoch
	}

	start := time.Now()
	m, err := bank.Train(ctx, slot, examples, opts)
	if err != nil {
		return err
	}

	if err := store.SaveClassifier(ctx, classifier.Snapshot(slot, m)); err != nil {
		return fmt.Errorf("failed to store model: %w", err)
	}

	slog.Info("Classifier trained",
		"slot", slot.String(),
		"model", m.String(),
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func reportTraining(out io.Writer, bank *classifier.Bank, trained []classifier.Slot) {
	for _, slot := range classifier.Slots() {
		m := bank.Model(slot)
		switch {
		case slices.Contains(trained, slot):
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s: %s", slot, m)))
		case m != nil:
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%s: kept stored model (%s)", slot, m)))
		}
	}
}
