// Package extract pulls structured fields out of purchase and task
// messages with regular expressions and keyword lists. Extraction is
// single-pass and first-match; a field that does not match is left empty.
package extract

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/common"
)

// MaxTitleWords caps the number of words kept in a task title.
const MaxTitleWords = 6

// Predictor labels text with one of the bank's classifiers.
type Predictor interface {
	Predict(slot classifier.Slot, text string) (string, error)
}

// Extractor extracts purchase and task fields.
type Extractor struct {
	predictor Predictor
	now       func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the clock used to fill in a missing deadline year.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// New creates an extractor that asks p for purposes and reminder cadences.
// A nil p behaves like an untrained bank.
func New(p Predictor, opts ...Option) *Extractor {
	e := &Extractor{
		predictor: p,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// predict returns the label for slot, or ok=false when the classifier is
// unavailable.
func (e *Extractor) predict(slot classifier.Slot, text string) (string, bool) {
	if e.predictor == nil {
		return "", false
	}

	label, err := e.predictor.Predict(slot, text)
	if err != nil {
		if !errors.Is(err, common.ErrModelNotTrained) {
			slog.Warn("Sub-classifier failed, using default",
				"slot", slot.String(),
				"error", err)
		}
		return "", false
	}
	return label, true
}

// firstTokens joins the first n whitespace-separated tokens of s.
func firstTokens(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
