// Package analyzer turns a free-text message into a purchase or a task.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/extract"
	"github.com/Veraticus/jotbot/internal/model"
)

// Labels the type classifier may predict for each variant.
var (
	purchaseLabels = map[string]struct{}{"purchase": {}, "покупка": {}}
	taskLabels     = map[string]struct{}{"task": {}, "задача": {}}
)

// Classifier is the part of the classifier bank the analyzer needs.
type Classifier interface {
	Predict(slot classifier.Slot, text string) (string, error)
	Trained(slot classifier.Slot) bool
}

// Analyzer classifies messages and extracts their fields.
type Analyzer struct {
	classifier Classifier
	extractor  *extract.Extractor
}

// New creates an analyzer. The extractor is usually built on the same
// classifier so purpose and reminder predictions share its models.
func New(c Classifier, e *extract.Extractor) *Analyzer {
	if e == nil {
		e = extract.New(c)
	}
	return &Analyzer{
		classifier: c,
		extractor:  e,
	}
}

// Ready reports whether the type classifier is trained.
func (a *Analyzer) Ready() bool {
	return a.classifier.Trained(classifier.SlotType)
}

// Analyze returns the item described by message. A blank message, or one
// whose predicted type is neither purchase nor task, yields a nil item and
// no error. An untrained type classifier yields common.ErrModelNotTrained.
func (a *Analyzer) Analyze(ctx context.Context, message string) (model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, nil //nolint:nilnil // blank messages produce no item
	}

	label, err := a.classifier.Predict(classifier.SlotType, message)
	if err != nil {
		return nil, fmt.Errorf("failed to classify message: %w", err)
	}

	kind := strings.ToLower(strings.TrimSpace(label))
	if _, ok := purchaseLabels[kind]; ok {
		return a.extractor.Purchase(message), nil
	}
	if _, ok := taskLabels[kind]; ok {
		return a.extractor.Task(message), nil
	}

	slog.Debug("Message is neither purchase nor task", "label", label)
	return nil, nil //nolint:nilnil // unrecognized types produce no item
}
