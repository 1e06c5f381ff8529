// Package testutil provides shared test helpers for packages that need a
// populated database.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/jotbot/internal/model"
	"github.com/Veraticus/jotbot/internal/service"
	"github.com/Veraticus/jotbot/internal/storage"
)

// TestDB is a migrated database in a per-test directory.
type TestDB struct {
	Storage   service.Storage
	t         *testing.T
	Path      string
	Purchases []model.PurchaseRecord
	Tasks     []model.TaskRecord
}

// TestDBOptions seeds a test database.
type TestDBOptions struct {
	CustomSetup func(context.Context, service.Storage) error
	Purchases   []model.Purchase
	Tasks       []model.Task
}

// SetupTestDB creates an empty migrated database. It is closed when the
// test ends.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a database seeded from opts. Seeded
// records are kept on the TestDB in insertion order.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jotbot.db")
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db := &TestDB{Storage: store, Path: path, t: t}

	for i := range opts.Purchases {
		rec, err := store.SavePurchase(ctx, &opts.Purchases[i], "")
		if err != nil {
			t.Fatalf("failed to seed purchase %d: %v", i, err)
		}
		db.Purchases = append(db.Purchases, *rec)
	}
	for i := range opts.Tasks {
		rec, err := store.SaveTask(ctx, &opts.Tasks[i], "")
		if err != nil {
			t.Fatalf("failed to seed task %d: %v", i, err)
		}
		db.Tasks = append(db.Tasks, *rec)
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return db
}

// MustCountPurchases returns the number of stored purchases or fails the test.
func (db *TestDB) MustCountPurchases() int {
	db.t.Helper()
	records, err := db.Storage.GetPurchases(context.Background(), storage.PurchaseFilter{})
	if err != nil {
		db.t.Fatalf("failed to list purchases: %v", err)
	}
	return len(records)
}

// MustCountTasks returns the number of stored tasks or fails the test.
func (db *TestDB) MustCountTasks() int {
	db.t.Helper()
	records, err := db.Storage.GetTasks(context.Background(), storage.TaskFilter{})
	if err != nil {
		db.t.Fatalf("failed to list tasks: %v", err)
	}
	return len(records)
}
