package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/jotbot/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidPurchase   = errors.New("invalid purchase")
	ErrInvalidClassifier = errors.New("invalid classifier snapshot")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

func validatePurchase(p *model.Purchase) error {
	if p == nil {
		return fmt.Errorf("%w: purchase", ErrNilParameter)
	}
	if p.Cost != nil && p.Cost.IsNegative() {
		return fmt.Errorf("%w: negative cost %s", ErrInvalidPurchase, p.Cost)
	}
	return nil
}

func validateSnapshot(snap *model.ClassifierSnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: classifier", ErrNilParameter)
	}
	if err := validateString(snap.Slot, "slot"); err != nil {
		return err
	}
	if len(snap.Labels) < 2 {
		return fmt.Errorf("%w: %d labels", ErrInvalidClassifier, len(snap.Labels))
	}
	if len(snap.Weights) != len(snap.Labels) || len(snap.Bias) != len(snap.Labels) {
		return fmt.Errorf("%w: %d labels but %d weight rows and %d biases",
			ErrInvalidClassifier, len(snap.Labels), len(snap.Weights), len(snap.Bias))
	}
	return nil
}
