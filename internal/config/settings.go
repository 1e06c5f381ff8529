package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/common"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyEmbeddingsPath   = "embeddings.path"
	KeyDatasetType      = "datasets.type"
	KeyDatasetPurpose   = "datasets.purpose"
	KeyDatasetReminder  = "datasets.reminder"
	KeyDatabasePath     = "database.path"
	KeyTrainingEpochs   = "training.epochs"
	KeyTrainingBatch    = "training.batch_size"
	KeyTrainingRate     = "training.learning_rate"
	KeyTrainingL2       = "training.l2"
	KeyTrainingSeed     = "training.seed"
	KeyWatchDebounce    = "watch.debounce"
	KeyLoggingLevel     = "logging.level"
	KeyLoggingFormat    = "logging.format"
	DefaultDatabasePath = "$HOME/.local/share/jotbot/jotbot.db"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	EmbeddingsPath string
	DatabasePath   string
	// Datasets maps a classifier slot to its CSV training file.
	Datasets      map[classifier.Slot]string
	Training      classifier.TrainOptions
	WatchDebounce time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	def := classifier.DefaultTrainOptions()

	v.SetDefault(KeyEmbeddingsPath, "~/.local/share/jotbot/cc.vec")
	v.SetDefault(KeyDatasetType, "~/.local/share/jotbot/datasets/type.csv")
	v.SetDefault(KeyDatasetPurpose, "~/.local/share/jotbot/datasets/purpose.csv")
	v.SetDefault(KeyDatasetReminder, "~/.local/share/jotbot/datasets/reminder.csv")
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyTrainingEpochs, def.Epochs)
	v.SetDefault(KeyTrainingBatch, def.BatchSize)
	v.SetDefault(KeyTrainingRate, def.LearningRate)
	v.SetDefault(KeyTrainingL2, def.L2)
	v.SetDefault(KeyTrainingSeed, def.Seed)
	v.SetDefault(KeyWatchDebounce, 500*time.Millisecond)
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "console")
}

// Load resolves Settings from v. Paths are expanded with ExpandPath.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		EmbeddingsPath: ExpandPath(strings.TrimSpace(v.GetString(KeyEmbeddingsPath))),
		DatabasePath:   ExpandPath(strings.TrimSpace(v.GetString(KeyDatabasePath))),
		Datasets: map[classifier.Slot]string{
			classifier.SlotType:     ExpandPath(strings.TrimSpace(v.GetString(KeyDatasetType))),
			classifier.SlotPurpose:  ExpandPath(strings.TrimSpace(v.GetString(KeyDatasetPurpose))),
			classifier.SlotReminder: ExpandPath(strings.TrimSpace(v.GetString(KeyDatasetReminder))),
		},
		Training: classifier.TrainOptions{
			Epochs:       v.GetInt(KeyTrainingEpochs),
			BatchSize:    v.GetInt(KeyTrainingBatch),
			LearningRate: v.GetFloat64(KeyTrainingRate),
			L2:           v.GetFloat64(KeyTrainingL2),
			Seed:         v.GetUint64(KeyTrainingSeed),
		},
		WatchDebounce: v.GetDuration(KeyWatchDebounce),
	}

	if s.EmbeddingsPath == "" {
		return nil, fmt.Errorf("%s: %w", KeyEmbeddingsPath, common.ErrMissingConfig)
	}
	if s.DatabasePath == "" {
		return nil, fmt.Errorf("%s: %w", KeyDatabasePath, common.ErrMissingConfig)
	}
	if s.Training.Epochs < 0 {
		return nil, fmt.Errorf("%s must not be negative: %w", KeyTrainingEpochs, common.ErrInvalidConfig)
	}
	if s.Training.BatchSize < 0 {
		return nil, fmt.Errorf("%s must not be negative: %w", KeyTrainingBatch, common.ErrInvalidConfig)
	}
	if s.Training.LearningRate < 0 {
		return nil, fmt.Errorf("%s must not be negative: %w", KeyTrainingRate, common.ErrInvalidConfig)
	}
	if s.WatchDebounce < 0 {
		return nil, fmt.Errorf("%s must not be negative: %w", KeyWatchDebounce, common.ErrInvalidConfig)
	}

	return s, nil
}

// Dataset returns the configured dataset path for slot.
func (s *Settings) Dataset(slot classifier.Slot) (string, error) {
	path := s.Datasets[slot]
	if path == "" {
		return "", fmt.Errorf("no dataset configured for %s classifier: %w", slot, common.ErrMissingConfig)
	}
	return path, nil
}
