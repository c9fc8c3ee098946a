package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New("production", "warn")
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	dev, err := New("local", "debug")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("local", "loud")
	assert.Error(t, err)
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"url credentials", "failed to connect to postgres://vizor:s3cret@db:5432/app", "failed to connect to postgres://[REDACTED]@db:5432/app"},
		{"key value password", "host=db user=vizor password=s3cret dbname=app", "host=db user=vizor password=[REDACTED] dbname=app"},
		{"nothing to hide", "connection refused", "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(errors.New(tt.in)))
		})
	}
	assert.Empty(t, SanitizeError(nil))
}

func TestTruncateQuery(t *testing.T) {
	short := "SELECT 1"
	assert.Equal(t, short, TruncateQuery(short))

	long := strings.Repeat("x", MaxQueryLogLength+10)
	got := TruncateQuery(long)
	assert.Len(t, got, MaxQueryLogLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}
