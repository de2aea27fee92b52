package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.name))
		})
	}
}

func TestNew_NoOutputIsNop(t *testing.T) {
	l, closeFn, err := New(Config{})
	require.NoError(t, err)
	defer closeFn()

	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "saavn.log")

	l, closeFn, err := New(Config{Level: WarnLevel, OutputPath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("snapshot write failed")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"snapshot write failed"`)
	assert.Contains(t, string(data), `"level":"warn"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
