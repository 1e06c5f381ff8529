package common

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want Severity
	}{
		{name: "nil", err: nil, want: SeverityNone},
		{name: "embedding resource", err: fmt.Errorf("open vec: %w", ErrEmbeddingResource), want: SeverityFatal},
		{name: "untrained model", err: fmt.Errorf("type: %w", ErrModelNotTrained), want: SeverityRecoverable},
		{name: "degenerate dataset", err: ErrDegenerateDataset, want: SeverityRecoverable},
		{name: "not found", err: ErrNotFound, want: SeverityRecoverable},
		{name: "unknown", err: errors.New("boom"), want: SeverityFatal},
		{name: "user error wrapping untrained", err: NewUserError("train first", ErrModelNotTrained), want: SeverityRecoverable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityOf(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	err := NewUserError("models are not trained", ErrModelNotTrained)
	assert.Equal(t, "models are not trained: model not trained", err.Error())
	assert.ErrorIs(t, err, ErrModelNotTrained)

	bare := &UserError{UserMessage: "just a message"}
	assert.Equal(t, "just a message", bare.Error())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
