package classifier

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Veraticus/jotbot/internal/model"
)

// Snapshot copies m into its persisted form.
func Snapshot(slot Slot, m *Model) *model.ClassifierSnapshot {
	weights := make([][]float64, len(m.Weights))
	for i, row := range m.Weights {
		weights[i] = slices.Clone(row)
	}
	return &model.ClassifierSnapshot{
		TrainedAt: m.TrainedAt,
		Slot:      slot.String(),
		Labels:    slices.Clone(m.Labels),
		Weights:   weights,
		Bias:      slices.Clone(m.Bias),
		Examples:  m.Examples,
	}
}

// FromSnapshot rebuilds the model stored in snap.
func FromSnapshot(snap *model.ClassifierSnapshot) (Slot, *Model, error) {
	slot, err := ParseSlot(snap.Slot)
	if err != nil {
		return 0, nil, err
	}
	return slot, &Model{
		TrainedAt: snap.TrainedAt,
		Labels:    snap.Labels,
		Weights:   snap.Weights,
		Bias:      snap.Bias,
		Examples:  snap.Examples,
	}, nil
}

// Restore installs every usable snapshot and returns the restored slots.
// Snapshots for unknown slots or of the wrong shape are skipped with a
// warning; they are replaced on the next train.
func (b *Bank) Restore(snaps []model.ClassifierSnapshot) []Slot {
	var restored []Slot
	for i := range snaps {
		slot, m, err := FromSnapshot(&snaps[i])
		if err == nil {
			err = b.Install(slot, m)
		}
		if err != nil {
			slog.Warn("Skipping stored classifier", "slot", snaps[i].Slot, "error", err)
			continue
		}
		restored = append(restored, slot)
	}
	return restored
}

// String renders a short summary for logs.
func (m *Model) String() string {
	return fmt.Sprintf("%d labels, %d examples", len(m.Labels), m.Examples)
}
