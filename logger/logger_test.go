package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewModes(t *testing.T) {
	dev, err := New("development")
	require.NoError(t, err)
	assert.True(t, dev.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))

	prod, err := New("Production")
	require.NoError(t, err)
	assert.False(t, prod.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, prod.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel))
}

func TestNopAndWith(t *testing.T) {
	l := Nop().With("session", "abc")

	assert.NotPanics(t, func() {
		l.Debug("debug", "k", 1)
		l.Info("info")
		l.Warn("warn")
		l.Error("error")
	})
}
