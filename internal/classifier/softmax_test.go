package classifier

import (
	"context"
	"testing"

	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oneHot returns a vector with weight w at dimension d.
func oneHot(d int, w float32) embedding.Vector {
	vec := make(embedding.Vector, embedding.Dim)
	vec[d] = w
	return vec
}

func testVectors() *embedding.Store {
	return embedding.NewStore(map[string]embedding.Vector{
		"bought":  oneHot(0, 1),
		"paid":    oneHot(1, 1),
		"book":    oneHot(2, 1),
		"milk":    oneHot(3, 1),
		"need":    oneHot(4, 1),
		"report":  oneHot(5, 1),
		"meeting": oneHot(6, 1),
		"every":   oneHot(7, 1),
		"day":     oneHot(8, 1),
		"week":    oneHot(9, 1),
	})
}

func typeExamples() []Example {
	return []Example{
		{Text: "bought a book", Label: "purchase"},
		{Text: "bought milk", Label: "purchase"},
		{Text: "paid for milk", Label: "purchase"},
		{Text: "paid for the book", Label: "purchase"},
		{Text: "need a report", Label: "task"},
		{Text: "meeting tomorrow", Label: "task"},
		{Text: "need to prepare the meeting", Label: "task"},
		{Text: "report by friday", Label: "task"},
	}
}

func TestTrain_SeparatesClasses(t *testing.T) {
	m, err := Train(context.Background(), testVectors(), typeExamples(), DefaultTrainOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"purchase", "task"}, m.Labels)
	assert.Equal(t, 8, m.Examples)
	assert.Equal(t, embedding.Dim, m.Dim())
	assert.False(t, m.TrainedAt.IsZero())

	store := testVectors()
	tests := []struct {
		text string
		want string
	}{
		{text: "Bought some milk", want: "purchase"},
		{text: "paid for a book", want: "purchase"},
		{text: "need the report", want: "task"},
		{text: "Meeting, report!", want: "task"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := m.Predict(store.Vectorize(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrain_ProbabilitiesSumToOne(t *testing.T) {
	m, err := Train(context.Background(), testVectors(), typeExamples(), DefaultTrainOptions())
	require.NoError(t, err)

	probs, err := m.Probabilities(testVectors().Vectorize("bought milk"))
	require.NoError(t, err)
	require.Len(t, probs, 2)
	assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-9)
	assert.Greater(t, probs[0], probs[1])
}

func TestTrain_DegenerateDatasets(t *testing.T) {
	tests := []struct {
		name     string
		examples []Example
	}{
		{name: "empty", examples: nil},
		{name: "single class", examples: []Example{
			{Text: "bought milk", Label: "purchase"},
			{Text: "bought book", Label: "purchase"},
		}},
		{name: "blank labels", examples: []Example{
			{Text: "bought milk", Label: " "},
			{Text: "need report", Label: ""},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Train(context.Background(), testVectors(), tt.examples, DefaultTrainOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrDegenerateDataset)
			assert.Nil(t, m)
		})
	}
}

func TestTrain_Reproducible(t *testing.T) {
	opts := DefaultTrainOptions()
	first, err := Train(context.Background(), testVectors(), typeExamples(), opts)
	require.NoError(t, err)
	second, err := Train(context.Background(), testVectors(), typeExamples(), opts)
	require.NoError(t, err)

	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, first.Bias, second.Bias)

	store := testVectors()
	heldOut := []string{"bought", "need", "milk report", "", "xyzzy", "paid meeting book"}
	for _, text := range heldOut {
		a, err := first.Predict(store.Vectorize(text))
		require.NoError(t, err)
		b, err := second.Predict(store.Vectorize(text))
		require.NoError(t, err)
		assert.Equal(t, a, b, "prediction for %q", text)
	}
}

func TestTrain_Progress(t *testing.T) {
	opts := DefaultTrainOptions()
	opts.Epochs = 5

	var epochs []int
	opts.Progress = func(epoch, total int) {
		assert.Equal(t, 5, total)
		epochs = append(epochs, epoch)
	}

	_, err := Train(context.Background(), testVectors(), typeExamples(), opts)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, epochs)
}

func TestTrain_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Train(ctx, testVectors(), typeExamples(), DefaultTrainOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModel_PredictDimensionMismatch(t *testing.T) {
	m, err := Train(context.Background(), testVectors(), typeExamples(), DefaultTrainOptions())
	require.NoError(t, err)

	_, err = m.Predict(make(embedding.Vector, 10))
	assert.ErrorIs(t, err, common.ErrDimensionMismatch)
}

func TestModel_PredictTieGoesToFirstLabel(t *testing.T) {
	m := &Model{
		Labels:  []string{"a", "b"},
		Weights: [][]float64{make([]float64, embedding.Dim), make([]float64, embedding.Dim)},
		Bias:    []float64{0, 0},
	}
	got, err := m.Predict(make(embedding.Vector, embedding.Dim))
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}
