package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/jotbot/internal/model"
)

// SaveClassifier stores a trained classifier, replacing any previous one in
// the same slot.
func (s *SQLiteStorage) SaveClassifier(ctx context.Context, snap *model.ClassifierSnapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshot(snap); err != nil {
		return err
	}

	labels, err := json.Marshal(snap.Labels)
	if err != nil {
		return fmt.Errorf("failed to encode labels: %w", err)
	}
	weights, err := json.Marshal(snap.Weights)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	bias, err := json.Marshal(snap.Bias)
	if err != nil {
		return fmt.Errorf("failed to encode bias: %w", err)
	}

	trainedAt := snap.TrainedAt
	if trainedAt.IsZero() {
		trainedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO classifiers (slot, labels, weights, bias, examples, trained_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			labels = excluded.labels,
			weights = excluded.weights,
			bias = excluded.bias,
			examples = excluded.examples,
			trained_at = excluded.trained_at
	`, snap.Slot, string(labels), weights, string(bias), snap.Examples, trainedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save classifier: %w", err)
	}
	return nil
}

// GetClassifiers returns every stored classifier ordered by slot.
func (s *SQLiteStorage) GetClassifiers(ctx context.Context) ([]model.ClassifierSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT slot, labels, weights, bias, examples, trained_at
		FROM classifiers
		ORDER BY slot
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifiers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []model.ClassifierSnapshot
	for rows.Next() {
		var (
			snap    model.ClassifierSnapshot
			labels  string
			weights []byte
			bias    string
		)
		if err := rows.Scan(&snap.Slot, &labels, &weights, &bias, &snap.Examples, &snap.TrainedAt); err != nil {
			return nil, fmt.Errorf("failed to scan classifier: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &snap.Labels); err != nil {
			return nil, fmt.Errorf("failed to decode labels for %s: %w", snap.Slot, err)
		}
		if err := json.Unmarshal(weights, &snap.Weights); err != nil {
			return nil, fmt.Errorf("failed to decode weights for %s: %w", snap.Slot, err)
		}
		if err := json.Unmarshal([]byte(bias), &snap.Bias); err != nil {
			return nil, fmt.Errorf("failed to decode bias for %s: %w", snap.Slot, err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// DeleteClassifier removes the stored classifier for slot, if any.
func (s *SQLiteStorage) DeleteClassifier(ctx context.Context, slot string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(slot, "slot"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM classifiers WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("failed to delete classifier: %w", err)
	}
	return nil
}
