package extract

import (
	"fmt"
	"time"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/common"
)

// stubPredictor answers from a fixed table; missing slots are untrained.
type stubPredictor struct {
	labels map[classifier.Slot]string
	err    error
}

func (s stubPredictor) Predict(slot classifier.Slot, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if label, ok := s.labels[slot]; ok {
		return label, nil
	}
	return "", fmt.Errorf("%s classifier: %w", slot, common.ErrModelNotTrained)
}

func fixedClock() time.Time {
	return time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
