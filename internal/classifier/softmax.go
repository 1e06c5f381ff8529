// Package classifier trains and serves the multiclass models that label
// messages: message type, purchase purpose and reminder cadence.
package classifier

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/embedding"
)

// Example is a labeled training text.
type Example struct {
	Text  string
	Label string
}

// Model is a trained softmax-regression classifier. A Model is never
// modified after Train returns it.
type Model struct {
	TrainedAt time.Time
	Labels    []string
	Weights   [][]float64
	Bias      []float64
	Examples  int
}

// TrainOptions tunes the gradient descent.
type TrainOptions struct {
	// Progress, if set, is called after every epoch.
	Progress     func(epoch, total int)
	Epochs       int
	BatchSize    int
	LearningRate float64
	L2           float64
	Seed         uint64
}

// DefaultTrainOptions returns the options used when none are configured.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Epochs:       200,
		BatchSize:    16,
		LearningRate: 0.5,
		L2:           1e-4,
		Seed:         42,
	}
}

func (o TrainOptions) withDefaults() TrainOptions {
	def := DefaultTrainOptions()
	if o.Epochs <= 0 {
		o.Epochs = def.Epochs
	}
	if o.BatchSize <= 0 {
		o.BatchSize = def.BatchSize
	}
	if o.LearningRate <= 0 {
		o.LearningRate = def.LearningRate
	}
	if o.L2 < 0 {
		o.L2 = 0
	}
	return o
}

// Train fits a model on examples. Every text is vectorized with v. The
// label vocabulary is the sorted set of distinct labels; fewer than two
// labels is an error.
func Train(ctx context.Context, v embedding.Vectorizer, examples []Example, opts TrainOptions) (*Model, error) {
	opts = opts.withDefaults()

	labels := labelVocabulary(examples)
	if len(labels) < 2 {
		return nil, fmt.Errorf("%w: got %d labels from %d examples", common.ErrDegenerateDataset, len(labels), len(examples))
	}

	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	features := make([][]float64, 0, len(examples))
	targets := make([]int, 0, len(examples))
	for _, ex := range examples {
		label := strings.TrimSpace(ex.Label)
		if label == "" {
			continue
		}
		features = append(features, toFloat64(v.Vectorize(ex.Text)))
		targets = append(targets, index[label])
	}

	m := &Model{
		Labels:   labels,
		Weights:  make([][]float64, len(labels)),
		Bias:     make([]float64, len(labels)),
		Examples: len(features),
	}
	for k := range m.Weights {
		m.Weights[k] = make([]float64, embedding.Dim)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	order := make([]int, len(features))
	for i := range order {
		order[i] = i
	}

	gradW := make([][]float64, len(labels))
	for k := range gradW {
		gradW[k] = make([]float64, embedding.Dim)
	}
	gradB := make([]float64, len(labels))
	probs := make([]float64, len(labels))

	for epoch := 1; epoch <= opts.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for start := 0; start < len(order); start += opts.BatchSize {
			end := min(start+opts.BatchSize, len(order))
			for k := range gradW {
				clear(gradW[k])
			}
			clear(gradB)

			for _, idx := range order[start:end] {
				x := features[idx]
				m.probabilities(x, probs)
				for k, p := range probs {
					delta := p
					if k == targets[idx] {
						delta -= 1
					}
					if delta == 0 {
						continue
					}
					row := gradW[k]
					for d, xd := range x {
						row[d] += delta * xd
					}
					gradB[k] += delta
				}
			}

			scale := opts.LearningRate / float64(end-start)
			for k, row := range m.Weights {
				for d := range row {
					row[d] -= scale*gradW[k][d] + opts.LearningRate*opts.L2*row[d]
				}
				m.Bias[k] -= scale * gradB[k]
			}
		}

		if opts.Progress != nil {
			opts.Progress(epoch, opts.Epochs)
		}
	}

	m.TrainedAt = time.Now()
	return m, nil
}

func labelVocabulary(examples []Example) []string {
	seen := make(map[string]struct{})
	for _, ex := range examples {
		label := strings.TrimSpace(ex.Label)
		if label == "" {
			continue
		}
		seen[label] = struct{}{}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

func toFloat64(v embedding.Vector) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

// probabilities writes the softmax of the class scores for x into out.
func (m *Model) probabilities(x []float64, out []float64) {
	maxScore := math.Inf(-1)
	for k, row := range m.Weights {
		s := m.Bias[k]
		for d, xd := range x {
			s += row[d] * xd
		}
		out[k] = s
		if s > maxScore {
			maxScore = s
		}
	}

	var total float64
	for k, s := range out {
		e := math.Exp(s - maxScore)
		out[k] = e
		total += e
	}
	for k := range out {
		out[k] /= total
	}
}

// Probabilities returns the class probabilities for features, indexed like
// m.Labels.
func (m *Model) Probabilities(features embedding.Vector) ([]float64, error) {
	if err := m.validate(len(features)); err != nil {
		return nil, err
	}
	out := make([]float64, len(m.Labels))
	m.probabilities(toFloat64(features), out)
	return out, nil
}

// Predict returns the highest scoring label for features. Ties go to the
// label that sorts first.
func (m *Model) Predict(features embedding.Vector) (string, error) {
	probs, err := m.Probabilities(features)
	if err != nil {
		return "", err
	}

	best := 0
	for k, p := range probs {
		if p > probs[best] {
			best = k
		}
	}
	return m.Labels[best], nil
}

// Dim returns the feature dimension the model was trained on.
func (m *Model) Dim() int {
	if len(m.Weights) == 0 {
		return 0
	}
	return len(m.Weights[0])
}

func (m *Model) validate(features int) error {
	if len(m.Labels) < 2 || len(m.Weights) != len(m.Labels) || len(m.Bias) != len(m.Labels) {
		return fmt.Errorf("%w: model has %d labels, %d weight rows, %d biases",
			common.ErrDegenerateDataset, len(m.Labels), len(m.Weights), len(m.Bias))
	}
	for _, row := range m.Weights {
		if len(row) != features {
			return fmt.Errorf("%w: model expects %d features, got %d", common.ErrDimensionMismatch, len(row), features)
		}
	}
	return nil
}
