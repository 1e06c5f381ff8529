package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// TrainingProgress reports training epochs for one or more classifiers on
// a single bar. It is safe to call Epoch from several goroutines.
type TrainingProgress struct {
	bar *progressbar.ProgressBar
}

// NewTrainingProgress creates a bar expecting total epochs.
func NewTrainingProgress(w io.Writer, total int, description string) *TrainingProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return &TrainingProgress{bar: bar}
}

// Epoch advances the bar by one. Its signature matches
// classifier.TrainOptions.Progress.
func (p *TrainingProgress) Epoch(_, _ int) {
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish fills the bar, e.g. after a slot failed early.
func (p *TrainingProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}

// Current returns the number of recorded epochs.
func (p *TrainingProgress) Current() int64 {
	return p.bar.State().CurrentNum
}
