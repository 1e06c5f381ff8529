// Package service defines the interfaces shared by the command layer.
package service

import (
	"context"

	"github.com/Veraticus/jotbot/internal/model"
	"github.com/Veraticus/jotbot/internal/storage"
	"github.com/shopspring/decimal"
)

// PurchaseStore persists purchases recognised in messages.
type PurchaseStore interface {
	SavePurchase(ctx context.Context, p *model.Purchase, message string) (*model.PurchaseRecord, error)
	GetPurchase(ctx context.Context, id int64) (*model.PurchaseRecord, error)
	GetPurchases(ctx context.Context, filter storage.PurchaseFilter) ([]model.PurchaseRecord, error)
	GetSpendingByPurpose(ctx context.Context) (map[string]decimal.Decimal, error)
	DeletePurchase(ctx context.Context, id int64) error
}

// TaskStore persists tasks recognised in messages.
type TaskStore interface {
	SaveTask(ctx context.Context, t *model.Task, message string) (*model.TaskRecord, error)
	GetTask(ctx context.Context, id int64) (*model.TaskRecord, error)
	GetTasks(ctx context.Context, filter storage.TaskFilter) ([]model.TaskRecord, error)
	DeleteTask(ctx context.Context, id int64) error
}

// ClassifierStore persists trained classifier weights.
type ClassifierStore interface {
	SaveClassifier(ctx context.Context, snap *model.ClassifierSnapshot) error
	GetClassifiers(ctx context.Context) ([]model.ClassifierSnapshot, error)
	DeleteClassifier(ctx context.Context, slot string) error
}

// Storage is the full persistence contract.
type Storage interface {
	PurchaseStore
	TaskStore
	ClassifierStore

	Migrate(ctx context.Context) error
	Close() error
}

var _ Storage = (*storage.SQLiteStorage)(nil)
