// Package watch retrains classifiers when their dataset files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when NewDatasetWatcher gets a non-positive delay.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called with the slots whose datasets changed, sorted.
type ChangeFunc func(ctx context.Context, slots []classifier.Slot)

// DatasetWatcher watches dataset files through their parent directories,
// so that editors replacing a file by rename are still noticed.
type DatasetWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]classifier.Slot
	onChange ChangeFunc
	debounce time.Duration
}

// NewDatasetWatcher watches each dataset path. Bursts of events within
// debounce are coalesced into one onChange call.
func NewDatasetWatcher(datasets map[classifier.Slot]string, debounce time.Duration, onChange ChangeFunc) (*DatasetWatcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dw := &DatasetWatcher{
		watcher:  w,
		files:    make(map[string]classifier.Slot, len(datasets)),
		onChange: onChange,
		debounce: debounce,
	}

	dirs := make(map[string]struct{})
	for slot, path := range datasets {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		dw.files[abs] = slot
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return dw, nil
}

// Run delivers changes until ctx is done or the watcher is closed.
func (w *DatasetWatcher) Run(ctx context.Context) error {
	pending := make(map[classifier.Slot]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			slot, watched := w.files[filepath.Clean(event.Name)]
			if !watched || !relevant(event.Op) {
				continue
			}
			slog.Debug("Dataset changed", "slot", slot.String(), "path", event.Name, "op", event.Op.String())
			pending[slot] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Dataset watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			slots := make([]classifier.Slot, 0, len(pending))
			for s := range pending {
				slots = append(slots, s)
			}
			clear(pending)
			sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
			w.onChange(ctx, slots)
		}
	}
}

// Close stops watching.
func (w *DatasetWatcher) Close() error {
	return w.watcher.Close()
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
