package model

import "time"

// PurchaseRecord is a Purchase that has been stored.
type PurchaseRecord struct {
	CreatedAt time.Time
	Purchase
	Message string
	ID      int64
}

// TaskRecord is a Task that has been stored.
type TaskRecord struct {
	CreatedAt time.Time
	Task
	Message string
	ID      int64
}

// ClassifierSnapshot is a trained classifier as persisted between runs.
type ClassifierSnapshot struct {
	TrainedAt time.Time
	Slot      string
	Labels    []string
	Weights   [][]float64
	Bias      []float64
	Examples  int
}
