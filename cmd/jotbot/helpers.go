package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/jotbot/internal/analyzer"
	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/config"
	"github.com/Veraticus/jotbot/internal/embedding"
	"github.com/Veraticus/jotbot/internal/model"
	"github.com/Veraticus/jotbot/internal/service"
	"github.com/Veraticus/jotbot/internal/storage"
	"github.com/spf13/viper"
)

func loadSettings() (*config.Settings, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens and migrates the database.
func initStorage(ctx context.Context, settings *config.Settings) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initBank loads the word vectors and installs every stored classifier.
func initBank(ctx context.Context, settings *config.Settings, store service.ClassifierStore) (*classifier.Bank, error) {
	vectors, err := embedding.Load(settings.EmbeddingsPath)
	if err != nil {
		return nil, common.NewUserError("could not load word vectors from "+settings.EmbeddingsPath, err)
	}

	bank := classifier.NewBank(vectors)

	snaps, err := store.GetClassifiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored classifiers: %w", err)
	}
	restored := bank.Restore(snaps)
	slog.Debug("Restored classifiers", "count", len(restored))

	return bank, nil
}

// initAnalyzer is initBank plus a readiness check.
func initAnalyzer(ctx context.Context, settings *config.Settings, store service.ClassifierStore) (*analyzer.Analyzer, *classifier.Bank, error) {
	bank, err := initBank(ctx, settings, store)
	if err != nil {
		return nil, nil, err
	}

	a := analyzer.New(bank, nil)
	if !a.Ready() {
		return nil, nil, common.NewUserError("the type classifier is not trained; run 'jotbot train' first", common.ErrModelNotTrained)
	}
	return a, bank, nil
}

// saveItem stores item and returns its new ID. A nil item is not stored.
func saveItem(ctx context.Context, store service.Storage, item model.Item, message string) (int64, error) {
	switch it := item.(type) {
	case model.Purchase:
		rec, err := store.SavePurchase(ctx, &it, message)
		if err != nil {
			return 0, fmt.Errorf("failed to save purchase: %w", err)
		}
		return rec.ID, nil
	case model.Task:
		rec, err := store.SaveTask(ctx, &it, message)
		if err != nil {
			return 0, fmt.Errorf("failed to save task: %w", err)
		}
		return rec.ID, nil
	default:
		return 0, nil
	}
}
