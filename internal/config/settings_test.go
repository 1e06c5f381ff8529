package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/home/tester/.local/share/jotbot/cc.vec", s.EmbeddingsPath)
	assert.Equal(t, "/home/tester/.local/share/jotbot/jotbot.db", s.DatabasePath)
	assert.Equal(t, classifier.DefaultTrainOptions(), s.Training)
	assert.Equal(t, 500*time.Millisecond, s.WatchDebounce)

	path, err := s.Dataset(classifier.SlotPurpose)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".local/share/jotbot/datasets/purpose.csv"), path)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyEmbeddingsPath, "/data/vectors.vec")
	v.Set(KeyTrainingEpochs, 10)
	v.Set(KeyTrainingSeed, 7)
	v.Set(KeyDatasetReminder, "")

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/data/vectors.vec", s.EmbeddingsPath)
	assert.Equal(t, 10, s.Training.Epochs)
	assert.Equal(t, uint64(7), s.Training.Seed)

	_, err = s.Dataset(classifier.SlotReminder)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{"missing embeddings", KeyEmbeddingsPath, " ", common.ErrMissingConfig},
		{"missing database", KeyDatabasePath, "", common.ErrMissingConfig},
		{"negative epochs", KeyTrainingEpochs, -1, common.ErrInvalidConfig},
		{"negative batch", KeyTrainingBatch, -4, common.ErrInvalidConfig},
		{"negative rate", KeyTrainingRate, -0.1, common.ErrInvalidConfig},
		{"negative debounce", KeyWatchDebounce, "-1s", common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, common.SeverityFatal, common.SeverityOf(err))
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("JOTBOT_TEST_DIR", "/srv/jot")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/tester"},
		{"~/data/x.db", "/home/tester/data/x.db"},
		{"$JOTBOT_TEST_DIR/x.db", "/srv/jot/x.db"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), tt.in)
	}
}
