package classifier

import (
	"context"
	"testing"

	"github.com/Veraticus/jotbot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RestoreRoundTrip(t *testing.T) {
	trained := NewBank(testVectors())
	m, err := trained.Train(context.Background(), SlotType, typeExamples(), DefaultTrainOptions())
	require.NoError(t, err)

	snap := Snapshot(SlotType, m)
	assert.Equal(t, "type", snap.Slot)
	assert.Equal(t, m.Labels, snap.Labels)
	assert.Equal(t, m.Examples, snap.Examples)

	snap.Weights[0][0] += 1000
	assert.NotEqual(t, snap.Weights[0][0], m.Weights[0][0], "snapshot must not alias the model")
	snap.Weights[0][0] -= 1000

	restored := NewBank(testVectors())
	slots := restored.Restore([]model.ClassifierSnapshot{*snap})
	assert.Equal(t, []Slot{SlotType}, slots)

	for _, text := range []string{"bought a book", "need a report"} {
		want, err := trained.Predict(SlotType, text)
		require.NoError(t, err)
		got, err := restored.Predict(SlotType, text)
		require.NoError(t, err)
		assert.Equal(t, want, got, text)
	}
}

func TestRestore_SkipsUnusableSnapshots(t *testing.T) {
	bank := NewBank(testVectors())

	slots := bank.Restore([]model.ClassifierSnapshot{
		{Slot: "sentiment", Labels: []string{"a", "b"}, Weights: [][]float64{{1}, {1}}, Bias: []float64{0, 0}},
		{Slot: "purpose", Labels: []string{"a", "b"}, Weights: [][]float64{{1}, {1}}, Bias: []float64{0, 0}},
	})

	assert.Empty(t, slots)
	assert.False(t, bank.Trained(SlotPurpose))
}

func TestFromSnapshot_UnknownSlot(t *testing.T) {
	_, _, err := FromSnapshot(&model.ClassifierSnapshot{Slot: "nope"})
	assert.ErrorIs(t, err, ErrUnknownSlot)
}
